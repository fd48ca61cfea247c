package commands

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/glotlabs/glot/internal/builder"
	"github.com/spf13/cobra"
)

// debounceWindow coalesces bursts of filesystem events into one rebuild.
const debounceWindow = 300 * time.Millisecond

// watchSkipDirs are directory names never watched for changes.
var watchSkipDirs = map[string]bool{
	".git":         true,
	".glot":        true,
	"node_modules": true,
	"target":       true,
	"zig-cache":    true,
	"zig-out":      true,
	"bin":          true,
	"obj":          true,
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild on source changes",
		Long: `Watch the source tree and rebuild the dev variant whenever a file
changes. Only the fast dev build runs in the loop; tests and the pinned
release build stay out of it. Build workspaces and VCS metadata are
excluded from watching.

Press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command) error {
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, desc.SourceRoot); err != nil {
		return err
	}

	rebuild := func() {
		start := time.Now()
		if _, err := eng.BuildVariant(cmd.Context(), desc, builder.VariantDev); err != nil {
			r.Errorln(r.Styles().Failure.Render("build failed:"), err)
			return
		}
		r.Println(r.Styles().Success.Render("ok"),
			"rebuilt in", time.Since(start).Round(time.Millisecond).String())
	}

	r.Println("watching", desc.SourceRoot)
	rebuild()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return stopCause(cmd.Context())
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				_ = addWatchDirs(watcher, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Errorln("watch error:", err)
		case <-pending:
			rebuild()
		}
	}
}

// stopCause translates watch-loop termination into an exit error. An
// interrupt is a normal stop, not a failure.
func stopCause(ctx context.Context) error {
	err := context.Cause(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// addWatchDirs recursively registers root and its subdirectories, skipping
// build output and VCS directories.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if watchSkipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
