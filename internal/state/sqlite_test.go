package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(nil)
	require.NoError(t, s.Open(":memory:"))
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_CreateRunAndRecordBuilds(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun("demo", "rust")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)

	base := time.Now().UTC()
	require.NoError(t, s.RecordBuild(&BuildRecord{
		RunID: run.ID, Project: "demo", Language: "rust",
		Variant: "dev", Status: "success", StartedAt: base, DurationMS: 120,
	}))
	require.NoError(t, s.RecordBuild(&BuildRecord{
		RunID: run.ID, Project: "demo", Language: "rust",
		Variant: "release", Status: "test-failure", StartedAt: base.Add(time.Second),
		DurationMS: 900, Error: "2 tests failed",
	}))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Builds, 2)

	assert.Equal(t, "dev", runs[0].Builds[0].Variant)
	assert.Equal(t, "success", runs[0].Builds[0].Status)
	assert.Equal(t, "release", runs[0].Builds[1].Variant)
	assert.Equal(t, "test-failure", runs[0].Builds[1].Status)
	assert.Equal(t, "2 tests failed", runs[0].Builds[1].Error)
}

func TestSQLiteStore_RecentRunsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.CreateRun(fmt.Sprintf("proj-%d", i), "go")
		require.NoError(t, err)
	}

	runs, err := s.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	s := NewSQLiteStore(nil)

	_, err := s.CreateRun("demo", "rust")
	assert.Error(t, err)
	assert.Error(t, s.RecordBuild(&BuildRecord{}))
	_, err = s.RecentRuns(1)
	assert.Error(t, err)
}

func TestSQLiteStore_RecordBuildPropagatesDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO builds").WillReturnError(fmt.Errorf("disk I/O error"))

	s := NewSQLiteStoreWithDB(db, nil)
	err = s.RecordBuild(&BuildRecord{RunID: "r1", Variant: "dev", Status: "success"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record build")
	assert.NoError(t, mock.ExpectationsWereMet())
}
