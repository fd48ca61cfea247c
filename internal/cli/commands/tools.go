package commands

import (
	"github.com/glotlabs/glot/internal/cli/output"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewToolsCommand creates the tools command.
func NewToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show the composed dev environment tools",
		Long: `Show the tools composed into the project's development environment:
the standard category tools, the language toolchain, and configured extras,
in their deterministic composition order.`,
		Example: `  # Show tools for the current project
  glot tools

  # Show tools as JSON
  glot tools -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTools(cmd)
		},
	}
	return cmd
}

// toolReport is the JSON shape of one composed tool.
type toolReport struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Origin   string `json:"origin"`
}

func runTools(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := newLogger(cfg)
	r := newRenderer(cmd, cfg)

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	desc, err := descriptorFor(cfg)
	if err != nil {
		return err
	}

	set, err := eng.ComposeTools(desc)
	if err != nil {
		return err
	}

	if r.IsStructured() {
		reports := make([]toolReport, 0, set.Len())
		for _, tl := range set.Tools() {
			reports = append(reports, toolReport{
				Name:     tl.Name,
				Category: string(tl.Category),
				Origin:   string(tl.Origin),
			})
		}
		return r.Structured(reports)
	}

	renderToolsTable(r, set)
	return nil
}

func renderToolsTable(r *output.Renderer, set *tool.Set) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tool", "Category", "Origin"})
	for _, tl := range set.Tools() {
		t.AppendRow(table.Row{tl.Name, string(tl.Category), string(tl.Origin)})
	}
	t.Render()
}
