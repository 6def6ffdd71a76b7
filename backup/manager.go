// Package backup runs the periodic database maintenance: timed snapshots of
// the SQLite file with fixed-count retention, and a daily sweep of expired
// refresh tokens. All failures are logged and swallowed; nothing here may
// affect request handling.
package backup

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabiorvs/controleConta/db"
	"github.com/fabiorvs/controleConta/models"
)

const (
	snapshotPrefix = "backup-"
	snapshotSuffix = ".db"
	timestampFmt   = "20060102-150405"
)

// Manager owns the background maintenance lifecycle.
type Manager struct {
	dbPath     string
	dir        string
	keep       int
	interval   time.Duration
	sweepEvery time.Duration
	storage    *db.Storage
	log        *logrus.Logger

	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewManager creates a manager snapshotting dbPath into dir every 6 hours,
// keeping the 10 most recent snapshots, and sweeping expired refresh tokens
// daily.
func NewManager(dbPath, dir string, storage *db.Storage, log *logrus.Logger) *Manager {
	return &Manager{
		dbPath:     dbPath,
		dir:        dir,
		keep:       10,
		interval:   6 * time.Hour,
		sweepEvery: 24 * time.Hour,
		storage:    storage,
		log:        log,
		trigger:    make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the maintenance loop. It returns an error only when the
// backup directory cannot be created.
func (m *Manager) Start() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	go m.run()
	return nil
}

// Stop shuts the maintenance loop down and waits for it to finish.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done
}

// TriggerBackup requests an extra snapshot outside the regular schedule,
// e.g. after a new registration. Non-blocking; a pending request is enough.
func (m *Manager) TriggerBackup() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

func (m *Manager) run() {
	defer close(m.done)

	backupTicker := time.NewTicker(m.interval)
	defer backupTicker.Stop()
	sweepTicker := time.NewTicker(m.sweepEvery)
	defer sweepTicker.Stop()

	for {
		select {
		case <-backupTicker.C:
			m.backupOnce()
		case <-m.trigger:
			m.backupOnce()
		case <-sweepTicker.C:
			m.sweepTokens()
		case <-m.stop:
			return
		}
	}
}

// backupOnce snapshots the database and prunes old snapshots. Best effort:
// the copy races the writer and an occasional torn snapshot is tolerated.
func (m *Manager) backupOnce() {
	if err := m.snapshot(time.Now()); err != nil {
		m.log.WithError(err).Error("backup snapshot failed")
		return
	}
	if err := m.prune(); err != nil {
		m.log.WithError(err).Error("backup pruning failed")
	}
}

func (m *Manager) snapshot(now time.Time) error {
	src, err := os.Open(m.dbPath)
	if err != nil {
		return err
	}
	defer src.Close()

	name := snapshotPrefix + now.Format(timestampFmt) + snapshotSuffix
	dst, err := os.Create(filepath.Join(m.dir, name))
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	m.log.WithField("file", name).Info("database snapshot written")
	return nil
}

// prune deletes all but the keep most recent snapshots. The embedded
// timestamp sorts lexicographically, so name order is time order.
func (m *Manager) prune() error {
	names, err := m.snapshotNames()
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names[min(m.keep, len(names)):] {
		if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
			return err
		}
		m.log.WithField("file", name).Info("old snapshot pruned")
	}
	return nil
}

func (m *Manager) sweepTokens() {
	n, err := m.storage.DeleteExpiredRefreshTokens(time.Now())
	if err != nil {
		m.log.WithError(err).Error("refresh token sweep failed")
		return
	}
	if n > 0 {
		m.log.WithField("deleted", n).Info("expired refresh tokens swept")
	}
}

// List returns metadata for all snapshots, most recent first.
func (m *Manager) List() ([]models.BackupFile, error) {
	names, err := m.snapshotNames()
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	files := []models.BackupFile{}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(m.dir, name))
		if err != nil {
			return nil, err
		}
		date, err := time.Parse(timestampFmt, strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix))
		if err != nil {
			continue
		}
		files = append(files, models.BackupFile{Filename: name, Date: date, Size: info.Size()})
	}
	return files, nil
}

func (m *Manager) snapshotNames() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, snapshotPrefix) && strings.HasSuffix(name, snapshotSuffix) {
			names = append(names, name)
		}
	}
	return names, nil
}
