package backup

import (
	"fmt"
	"os"
	"time"

	"desktopclean/internal/fsutil"
)

// Manager takes byte-for-byte copies of association files before they are
// rewritten. Backups sit next to the original with a fixed suffix.
type Manager struct {
	suffix string
	dryRun bool
}

// BackupError represents a failure to copy a file aside before rewriting it
type BackupError struct {
	Path   string
	Backup string
	Err    error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("failed to back up %s to %s: %v", e.Path, e.Backup, e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// Entry describes an existing backup on disk
type Entry struct {
	Original string
	Path     string
	Size     int64
	ModTime  time.Time
}

// New creates a new Manager. In dry run no backup is written.
func New(suffix string, dryRun bool) *Manager {
	return &Manager{
		suffix: suffix,
		dryRun: dryRun,
	}
}

// PathFor returns the backup location for path
func (m *Manager) PathFor(path string) string {
	return path + m.suffix
}

// Backup copies path to its backup location and returns that location.
// The returned bool is false when nothing was written (dry run).
func (m *Manager) Backup(path string) (string, bool, error) {
	backupPath := m.PathFor(path)

	if m.dryRun {
		return backupPath, false, nil
	}

	if err := fsutil.CopyFile(path, backupPath); err != nil {
		return backupPath, false, &BackupError{Path: path, Backup: backupPath, Err: err}
	}

	return backupPath, true, nil
}

// List returns the backups that exist for the given originals
func (m *Manager) List(originals []string) []Entry {
	var entries []Entry
	for _, original := range originals {
		backupPath := m.PathFor(original)
		info, err := os.Stat(backupPath)
		if err != nil || info.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Original: original,
			Path:     backupPath,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}
	return entries
}
