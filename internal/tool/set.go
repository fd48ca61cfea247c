package tool

// Set is an ordered, name-deduplicated list of tools for one project.
type Set struct {
	tools []Tool
	index map[string]int
}

// Compose builds the effective tool set for a project: the standard registry
// tools first, then language-specific tools, then user extras. Duplicates are
// resolved by name with the earliest origin winning, so standard tools are
// never displaced and extras can only supplement. Composition is pure and
// order-stable: the same inputs always produce the same set.
func Compose(standard []Tool, language []Tool, extras []string) *Set {
	s := &Set{index: make(map[string]int)}

	for _, t := range standard {
		s.add(t)
	}
	for _, t := range language {
		t.Origin = OriginLanguage
		s.add(t)
	}
	for _, name := range extras {
		s.add(Tool{Name: name, Category: CategoryDev, Origin: OriginExtra})
	}
	return s
}

// add appends a tool unless a tool of the same name is already present.
func (s *Set) add(t Tool) {
	if _, ok := s.index[t.Name]; ok {
		return
	}
	s.index[t.Name] = len(s.tools)
	s.tools = append(s.tools, t)
}

// Tools returns the composed tools in order. The returned slice is a copy.
func (s *Set) Tools() []Tool {
	return append([]Tool(nil), s.tools...)
}

// Names returns the tool names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.tools))
	for i, t := range s.tools {
		names[i] = t.Name
	}
	return names
}

// Contains reports whether a tool with the given name is in the set.
func (s *Set) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of tools in the set.
func (s *Set) Len() int {
	return len(s.tools)
}
