// Package config provides configuration management for the glot CLI.
//
// Configuration is layered: defaults, then the project's glot.yaml, then
// GLOT_-prefixed environment variables, then CLI flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Language        string   `koanf:"language"`
	BuildTargetPath string   `koanf:"build_target_path"`
	BinaryName      string   `koanf:"binary_name"`
	ExtraTools      []string `koanf:"extra_tools"`
	ToolCategories  []string `koanf:"tool_categories"`
	TestArgs        []string `koanf:"test_args"`
	StatePath       string   `koanf:"state_path"`
	WorkDir         string   `koanf:"work_dir"`
	Verbose         bool     `koanf:"verbose"`
	OutputFormat    string   `koanf:"output"`

	// ProjectRoot is the resolved project source root. It is inferred from
	// flags and the filesystem, never read from the config file itself.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultStateFile = ".glot/state.db"
	DefaultWorkDir   = ".glot/work"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=json
)
