package identity

import (
	"os"
	"regexp"
)

// cmakeProjectRe matches the first project(...) declaration.
var cmakeProjectRe = regexp.MustCompile(`(?mi)^\s*project\s*\(\s*([A-Za-z0-9_.-]+)`)

var cppResolver = resolver{
	manifestName:  "CMakeLists.txt",
	parseName:     parseCMakeLists,
	testFileGlobs: []string{"test_*.cpp", "*_test.cpp"},
}

func parseCMakeLists(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	m := cmakeProjectRe.FindSubmatch(data)
	if m == nil {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "cpp", Path: path, Detail: "project() declaration is missing"}
	}
	name := string(m[1])
	return name, name, nil
}
