package identity

import (
	"os"
	"path"

	"golang.org/x/mod/modfile"
)

var goResolver = resolver{
	manifestName:  "go.mod",
	parseName:     parseGoMod,
	testFileGlobs: []string{"*_test.go"},
}

// parseGoMod derives the project name from the last segment of the module path.
func parseGoMod(manifestPath string) (string, string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", "", err
	}

	f, err := modfile.ParseLax(manifestPath, data, nil)
	if err != nil {
		return "", "", err
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "go", Path: manifestPath, Detail: "module directive is missing"}
	}

	name := path.Base(f.Module.Mod.Path)
	return name, name, nil
}
