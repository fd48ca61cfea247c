package commands

import (
	"time"

	"github.com/glotlabs/glot/internal/cli/output"
	"github.com/glotlabs/glot/internal/state"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent build runs",
		Long:  `Show recent build runs with their per-variant results, newest first.`,
		Example: `  # Show the last 10 runs
  glot history

  # Show the last 3 runs as JSON
  glot history --limit 3 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "Maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cfg := getConfig()
	logger := newLogger(cfg)
	r := newRenderer(cmd, cfg)

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return err
	}

	runs, err := store.RecentRuns(opts.Limit)
	if err != nil {
		return err
	}

	if r.IsStructured() {
		return r.Structured(runs)
	}

	renderHistoryTable(r, runs)
	return nil
}

func renderHistoryTable(r *output.Renderer, runs []*state.Run) {
	if len(runs) == 0 {
		r.Println("no recorded runs")
		return
	}

	styles := r.Styles()
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Started", "Project", "Language", "Variant", "Status", "Duration"})

	for _, run := range runs {
		for _, b := range run.Builds {
			status := b.Status
			if status == "success" {
				status = styles.Success.Render(status)
			} else {
				status = styles.Failure.Render(status)
			}
			t.AppendRow(table.Row{
				run.StartedAt.Local().Format(time.DateTime),
				run.Project,
				run.Language,
				b.Variant,
				status,
				(time.Duration(b.DurationMS) * time.Millisecond).String(),
			})
		}
	}
	t.Render()
}
