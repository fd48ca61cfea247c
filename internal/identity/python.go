package identity

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// pyprojectManifest is the subset of pyproject.toml needed for identity
// resolution. Both PEP 621 metadata and legacy poetry metadata are read.
type pyprojectManifest struct {
	Project struct {
		Name                 string           `toml:"name"`
		OptionalDependencies map[string][]any `toml:"optional-dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]any `toml:"dependency-groups"`
	Tool             struct {
		Poetry struct {
			Name  string `toml:"name"`
			Group map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var pythonResolver = resolver{
	manifestName:  "pyproject.toml",
	parseName:     parsePyproject,
	testFileGlobs: []string{"test_*.py", "*_test.py"},
	hasDevGroup:   pyprojectHasDevGroup,
}

func parsePyproject(path string) (string, string, error) {
	m, err := loadPyproject(path)
	if err != nil {
		return "", "", err
	}

	name := m.Project.Name
	if name == "" {
		name = m.Tool.Poetry.Name
	}
	if name == "" {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "python", Path: path, Detail: "project.name is missing"}
	}
	return name, name, nil
}

// pyprojectHasDevGroup reports a dev or test dependency group in any of the
// places Python projects declare one.
func pyprojectHasDevGroup(path string) bool {
	m, err := loadPyproject(path)
	if err != nil {
		return false
	}
	for _, group := range []string{"dev", "test"} {
		if len(m.Project.OptionalDependencies[group]) > 0 {
			return true
		}
		if len(m.DependencyGroups[group]) > 0 {
			return true
		}
		if g, ok := m.Tool.Poetry.Group[group]; ok && len(g.Dependencies) > 0 {
			return true
		}
	}
	return false
}

func loadPyproject(path string) (*pyprojectManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m pyprojectManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
