// Package state persists build run history. Every engine invocation records
// one run with its per-variant results, giving `glot history` and external
// tooling a durable view of past builds.
package state

import "time"

// BuildRecord is one recorded variant build.
type BuildRecord struct {
	ID         string
	RunID      string
	Project    string
	Language   string
	Variant    string
	Status     string
	StartedAt  time.Time
	DurationMS int64
	Error      string
}

// Run groups the variant builds of one engine invocation.
type Run struct {
	ID        string
	Project   string
	Language  string
	StartedAt time.Time
	Builds    []*BuildRecord
}

// Store is the persistence interface for build history.
type Store interface {
	// Open opens the store at the given path (":memory:" for in-memory).
	Open(path string) error

	// Close releases the underlying database.
	Close() error

	// Migrate brings the schema up to date.
	Migrate() error

	// CreateRun records the start of an engine invocation.
	CreateRun(project, language string) (*Run, error)

	// RecordBuild appends a variant build result to a run.
	RecordBuild(record *BuildRecord) error

	// RecentRuns returns the most recent runs with their builds, newest first.
	RecentRuns(limit int) ([]*Run, error)
}
