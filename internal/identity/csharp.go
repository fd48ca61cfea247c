package identity

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

// csprojFile is the minimal shape used to validate a project file.
type csprojFile struct {
	XMLName xml.Name `xml:"Project"`
}

var csharpResolver = resolver{
	manifestGlob:  "*.csproj",
	parseName:     parseCsproj,
	testFileGlobs: []string{"*Tests.cs"},
}

// parseCsproj derives the project name from the .csproj filename. The file is
// still parsed so that a corrupt project file fails identity resolution
// instead of failing mid-build.
func parseCsproj(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	var f csprojFile
	if err := xml.Unmarshal(data, &f); err != nil {
		return "", "", err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return name, name, nil
}
