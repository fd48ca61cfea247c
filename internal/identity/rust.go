package identity

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// cargoManifest is the subset of Cargo.toml needed for identity resolution.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

var rustResolver = resolver{
	manifestName: "Cargo.toml",
	parseName:    parseCargo,
	// Rust unit tests live inline; integration tests live under tests/,
	// which the conventional directory check already covers.
	testFileGlobs: nil,
	hasDevGroup:   cargoHasDevDeps,
}

// parseCargo derives the project and binary name from Cargo.toml. When
// multiple [[bin]] targets are declared, the first in declaration order wins.
func parseCargo(path string) (string, string, error) {
	m, err := loadCargo(path)
	if err != nil {
		return "", "", err
	}
	if m.Package.Name == "" {
		return "", "", &ManifestError{Kind: KindInvalid, Language: "rust", Path: path, Detail: "package.name is missing"}
	}

	binary := m.Package.Name
	if len(m.Bin) > 0 && m.Bin[0].Name != "" {
		binary = m.Bin[0].Name
	}
	return m.Package.Name, binary, nil
}

func cargoHasDevDeps(path string) bool {
	m, err := loadCargo(path)
	return err == nil && len(m.DevDependencies) > 0
}

func loadCargo(path string) (*cargoManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
