package identity

import (
	"os"
	"regexp"
)

// zonNameRe matches the .name field of build.zig.zon, covering both the
// enum-literal (.name = .demo) and string (.name = "demo") forms.
var zonNameRe = regexp.MustCompile(`\.name\s*=\s*(?:\.([A-Za-z0-9_-]+)|"([^"]+)")`)

var zigResolver = resolver{
	manifestName:  "build.zig.zon",
	parseName:     parseZon,
	testFileGlobs: nil, // zig tests are inline; tests/ dir check covers the rest
}

func parseZon(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	m := zonNameRe.FindSubmatch(data)
	if m == nil {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "zig", Path: path, Detail: ".name field is missing"}
	}
	name := string(m[1])
	if name == "" {
		name = string(m[2])
	}
	return name, name, nil
}
