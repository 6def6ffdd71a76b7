package backup

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiorvs/controleConta/db"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testManager(t *testing.T) (*Manager, *db.Storage) {
	t.Helper()
	storage, err := db.NewStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "finance.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("sqlite data"), 0o644))

	m := NewManager(dbPath, filepath.Join(dir, "backups"), storage, testLogger())
	require.NoError(t, os.MkdirAll(m.dir, 0o755))
	return m, storage
}

func TestSnapshotCopiesDatabaseFile(t *testing.T) {
	m, _ := testManager(t)

	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.snapshot(at))

	data, err := os.ReadFile(filepath.Join(m.dir, "backup-20250101-120000.db"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite data", string(data))
}

func TestPruneRetainsTenMostRecent(t *testing.T) {
	m, _ := testManager(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		require.NoError(t, m.snapshot(base.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, m.prune())

	names, err := m.snapshotNames()
	require.NoError(t, err)
	assert.Len(t, names, 10, "pruning must retain exactly the 10 most recent snapshots")

	// The 5 oldest are the ones gone.
	for i := 0; i < 5; i++ {
		name := snapshotPrefix + base.Add(time.Duration(i)*time.Minute).Format(timestampFmt) + snapshotSuffix
		assert.NotContains(t, names, name)
	}
	latest := snapshotPrefix + base.Add(14*time.Minute).Format(timestampFmt) + snapshotSuffix
	assert.Contains(t, names, latest)
}

func TestPruneIgnoresForeignFiles(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(m.dir, "notes.txt"), []byte("keep me"), 0o644))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, m.snapshot(base.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, m.prune())

	_, err := os.Stat(filepath.Join(m.dir, "notes.txt"))
	assert.NoError(t, err, "non-snapshot files must not be pruned")
}

func TestListReturnsMostRecentFirst(t *testing.T) {
	m, _ := testManager(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.snapshot(base.Add(time.Duration(i)*time.Hour)))
	}

	files, err := m.List()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "backup-20250101-020000.db", files[0].Filename)
	assert.Equal(t, base.Add(2*time.Hour), files[0].Date)
	assert.Equal(t, int64(len("sqlite data")), files[0].Size)
	assert.True(t, files[0].Date.After(files[2].Date))
}

func TestSweepTokensRemovesOnlyExpired(t *testing.T) {
	m, storage := testManager(t)

	user, err := storage.CreateUser("ana", "a@x.com", "hash", 0)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, storage.CreateRefreshToken(user.ID, "expired", now.Add(-time.Hour)))
	require.NoError(t, storage.CreateRefreshToken(user.ID, "valid", now.Add(time.Hour)))

	m.sweepTokens()

	gone, err := storage.GetRefreshToken("expired")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := storage.GetRefreshToken("valid")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestTriggerBackupNeverBlocks(t *testing.T) {
	m, _ := testManager(t)

	// Not started: repeated triggers must still return immediately.
	for i := 0; i < 5; i++ {
		m.TriggerBackup()
	}
}

func TestStartTriggerStop(t *testing.T) {
	m, _ := testManager(t)
	require.NoError(t, m.Start())

	m.TriggerBackup()
	assert.Eventually(t, func() bool {
		names, err := m.snapshotNames()
		return err == nil && len(names) > 0
	}, 5*time.Second, 10*time.Millisecond, "triggered snapshot should appear")

	m.Stop()
}

func TestSnapshotFailureIsNotFatal(t *testing.T) {
	m, _ := testManager(t)
	m.dbPath = filepath.Join(t.TempDir(), "does-not-exist.db")

	// Logged and swallowed.
	m.backupOnce()

	names, err := m.snapshotNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}
