// Package identity derives project identity from language manifests.
// It inspects the source tree once per invocation and reports the project
// name, the binary name, and whether the project carries tests.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Identity is the resolved identity of a project. It is computed once per
// invocation and never mutated afterwards.
type Identity struct {
	// Name is the project name derived from the manifest (or the override)
	Name string

	// BinaryName is the name of the produced executable
	BinaryName string

	// HasTests reports whether the project carries a test suite
	HasTests bool
}

// ErrorKind classifies manifest resolution failures.
type ErrorKind string

const (
	// KindMissing means no manifest candidate was found.
	KindMissing ErrorKind = "missing-manifest"

	// KindAmbiguous means more than one required manifest candidate was found.
	KindAmbiguous ErrorKind = "ambiguous-manifest"

	// KindInvalid means the manifest was found but could not be parsed.
	// There is deliberately no fallback to a directory-derived name.
	KindInvalid ErrorKind = "invalid-manifest"
)

// ManifestError is returned when project identity cannot be derived from the
// source tree. It is always surfaced before any build is attempted.
type ManifestError struct {
	Kind     ErrorKind
	Language string
	Path     string
	Detail   string
}

func (e *ManifestError) Error() string {
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("no %s manifest found in %s (%s)", e.Language, e.Path, e.Detail)
	case KindAmbiguous:
		return fmt.Sprintf("ambiguous %s manifest in %s: %s", e.Language, e.Path, e.Detail)
	default:
		return fmt.Sprintf("invalid %s manifest %s: %s", e.Language, e.Path, e.Detail)
	}
}

// resolver derives identity details for one language.
type resolver struct {
	// manifestName is the fixed manifest file name, if the language uses one
	manifestName string

	// manifestGlob matches manifest candidates, if the language uses a
	// filename-derived manifest (e.g., *.csproj); exactly one must match
	manifestGlob string

	// parseName extracts the project and binary name from the manifest
	parseName func(path string) (name, binary string, err error)

	// testFileGlobs are language-conventional test file patterns
	testFileGlobs []string

	// hasDevGroup reports whether the manifest declares a dev/test
	// dependency group (optional)
	hasDevGroup func(path string) bool
}

// resolvers maps language tags to their manifest introspection rules.
var resolvers = map[string]resolver{
	"rust":   rustResolver,
	"go":     goResolver,
	"python": pythonResolver,
	"csharp": csharpResolver,
	"nim":    nimResolver,
	"zig":    zigResolver,
	"cpp":    cppResolver,
}

// Languages returns the supported language tags, sorted.
func Languages() []string {
	langs := make([]string, 0, len(resolvers))
	for l := range resolvers {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Resolve derives the project identity for a language from its source tree.
// The manifest is searched under sourceRoot/buildTargetPath. A non-empty
// binaryNameOverride is used verbatim and skips manifest name derivation;
// test detection still runs.
func Resolve(sourceRoot, language, buildTargetPath, binaryNameOverride string) (*Identity, error) {
	r, ok := resolvers[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (supported: %s)", language, strings.Join(Languages(), ", "))
	}

	root := sourceRoot
	if buildTargetPath != "" {
		root = filepath.Join(sourceRoot, buildTargetPath)
	}

	id := &Identity{}

	manifestPath := ""
	if binaryNameOverride != "" {
		id.Name = binaryNameOverride
		id.BinaryName = binaryNameOverride
		// Manifest is still consulted for test detection when present.
		manifestPath, _ = r.findManifest(root, language)
	} else {
		var err error
		manifestPath, err = r.findManifest(root, language)
		if err != nil {
			return nil, err
		}

		name, binary, err := r.parseName(manifestPath)
		if err != nil {
			if merr, ok := err.(*ManifestError); ok {
				return nil, merr
			}
			return nil, &ManifestError{Kind: KindInvalid, Language: language, Path: manifestPath, Detail: err.Error()}
		}
		id.Name = name
		id.BinaryName = binary
	}

	id.HasTests = detectTests(root, r, manifestPath)
	return id, nil
}

// findManifest locates the manifest for the language, enforcing the
// exactly-one rule for glob-style manifests.
func (r resolver) findManifest(root, language string) (string, error) {
	if r.manifestName != "" {
		path := filepath.Join(root, r.manifestName)
		if _, err := os.Stat(path); err != nil {
			return "", &ManifestError{Kind: KindMissing, Language: language, Path: root, Detail: "expected " + r.manifestName}
		}
		return path, nil
	}

	matches, err := filepath.Glob(filepath.Join(root, r.manifestGlob))
	if err != nil {
		return "", fmt.Errorf("manifest glob: %w", err)
	}
	switch len(matches) {
	case 0:
		return "", &ManifestError{Kind: KindMissing, Language: language, Path: root, Detail: "expected " + r.manifestGlob}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = filepath.Base(m)
		}
		return "", &ManifestError{Kind: KindAmbiguous, Language: language, Path: root, Detail: strings.Join(names, ", ")}
	}
}

// conventionalTestDirs are checked for every language.
var conventionalTestDirs = []string{"tests", "test"}

// detectTests reports whether a conventional test directory exists, a
// language-conventional test file exists, or the manifest declares a dev/test
// dependency group.
func detectTests(root string, r resolver, manifestPath string) bool {
	for _, dir := range conventionalTestDirs {
		if info, err := os.Stat(filepath.Join(root, dir)); err == nil && info.IsDir() {
			return true
		}
	}

	for _, glob := range r.testFileGlobs {
		if hasMatch(root, glob) {
			return true
		}
	}

	if r.hasDevGroup != nil && manifestPath != "" {
		if _, err := os.Stat(manifestPath); err == nil {
			return r.hasDevGroup(manifestPath)
		}
	}
	return false
}

// hasMatch walks root looking for a file matching the glob pattern.
func hasMatch(root, pattern string) bool {
	found := false
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipAll
		}
		if d.IsDir() {
			// Skip common vendored/derived trees.
			switch d.Name() {
			case ".git", "node_modules", "target", "zig-cache", "zig-out", "bin", "obj":
				if path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
