package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a store. A nil logger discards log output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreWithDB wraps an existing database connection. Used by tests
// that need to inject failures or share a connection.
func NewSQLiteStoreWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens the SQLite database at path. Use ":memory:" for tests.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping state database: %w", err)
	}

	s.db = db
	s.logger.Debug("state store opened", "path", path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of an engine invocation.
func (s *SQLiteStore) CreateRun(project, language string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	run := &Run{
		ID:        uuid.New().String(),
		Project:   project,
		Language:  language,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, project, language, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Project, run.Language, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// RecordBuild appends a variant build result to a run.
func (s *SQLiteStore) RecordBuild(record *BuildRecord) error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO builds (id, run_id, project, language, variant, status, started_at, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.RunID, record.Project, record.Language, record.Variant,
		record.Status, record.StartedAt, record.DurationMS, record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs with their builds, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, project, language, started_at FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.Project, &run.Language, &run.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		builds, err := s.buildsForRun(run.ID)
		if err != nil {
			return nil, err
		}
		run.Builds = builds
	}
	return runs, nil
}

func (s *SQLiteStore) buildsForRun(runID string) ([]*BuildRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, project, language, variant, status, started_at, duration_ms, error
		 FROM builds WHERE run_id = ? ORDER BY started_at ASC, variant`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var builds []*BuildRecord
	for rows.Next() {
		b := &BuildRecord{}
		var errMsg sql.NullString
		if err := rows.Scan(&b.ID, &b.RunID, &b.Project, &b.Language, &b.Variant,
			&b.Status, &b.StartedAt, &b.DurationMS, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		b.Error = errMsg.String
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
