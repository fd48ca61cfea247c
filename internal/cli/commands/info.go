package commands

import (
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/toolchain"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the resolved project identity",
		Long: `Resolve and display the project's identity: its name and binary name
derived from the native manifest, and whether a test suite was detected.

No toolchain is invoked; this is manifest introspection only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd)
		},
	}
	return cmd
}

// infoReport is the JSON shape of the resolved identity.
type infoReport struct {
	Project    string `json:"project"`
	BinaryName string `json:"binary_name"`
	Language   string `json:"language"`
	HasTests   bool   `json:"has_tests"`
	SourceRoot string `json:"source_root"`
	Toolchain  string `json:"toolchain,omitempty"`
}

// probeCommands maps a language tag to the toolchain command probed for its
// version in the info report.
var probeCommands = map[string]string{
	"rust":   "cargo",
	"go":     "go",
	"python": "python3",
	"csharp": "dotnet",
	"nim":    "nim",
	"zig":    "zig",
	"cpp":    "cmake",
}

func runInfo(cmd *cobra.Command) error {
	cfg := getConfig()
	r := newRenderer(cmd, cfg)

	desc, err := descriptorFor(cfg)
	if err != nil {
		return err
	}

	id, err := identity.Resolve(desc.SourceRoot, desc.Language, desc.BuildTargetPath, desc.BinaryNameOverride)
	if err != nil {
		return err
	}

	report := infoReport{
		Project:    id.Name,
		BinaryName: id.BinaryName,
		Language:   desc.Language,
		HasTests:   id.HasTests,
		SourceRoot: desc.SourceRoot,
	}

	// Best effort: an uninstalled toolchain leaves the field empty.
	if probe := probeCommands[desc.Language]; probe != "" {
		if version, err := toolchain.Probe(cmd.Context(), probe); err == nil {
			report.Toolchain = version
		}
	}

	if r.IsStructured() {
		return r.Structured(report)
	}

	styles := r.Styles()
	r.Println(styles.Header.Render(report.Project))
	r.Printf("language:  %s\n", report.Language)
	r.Printf("binary:    %s\n", report.BinaryName)
	r.Printf("tests:     %t\n", report.HasTests)
	r.Printf("source:    %s\n", report.SourceRoot)
	if report.Toolchain != "" {
		r.Printf("toolchain: %s\n", report.Toolchain)
	}
	return nil
}
