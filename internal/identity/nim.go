package identity

import (
	"path/filepath"
	"strings"
)

var nimResolver = resolver{
	manifestGlob: "*.nimble",
	parseName:    parseNimble,
	// nimble convention keeps tests under tests/, which the conventional
	// directory check already covers
	testFileGlobs: nil,
}

// parseNimble derives the project name from the .nimble filename, matching
// nimble's own package naming rule.
func parseNimble(path string) (string, string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "nim", Path: path, Detail: "empty package name"}
	}
	return name, name, nil
}
