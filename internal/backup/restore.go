package backup

import (
	"fmt"
	"os"

	"desktopclean/internal/fsutil"
)

// RestoreResult contains the result of a restore operation
type RestoreResult struct {
	Restored []string
	Missing  []string
	Errors   []RestoreError
}

// RestoreError represents an error during restore
type RestoreError struct {
	Path  string
	Error error
}

// Restore copies the backup of each original back over it. Originals without
// a backup are reported as missing. The backups themselves are kept.
func (m *Manager) Restore(originals []string) (*RestoreResult, error) {
	result := &RestoreResult{
		Restored: []string{},
		Missing:  []string{},
		Errors:   []RestoreError{},
	}

	for _, original := range originals {
		backupPath := m.PathFor(original)

		if _, err := os.Stat(backupPath); err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, original)
				continue
			}
			result.Errors = append(result.Errors, RestoreError{
				Path:  original,
				Error: fmt.Errorf("cannot stat backup: %w", err),
			})
			continue
		}

		if m.dryRun {
			result.Restored = append(result.Restored, original)
			continue
		}

		if err := fsutil.CopyFile(backupPath, original); err != nil {
			result.Errors = append(result.Errors, RestoreError{
				Path:  original,
				Error: fmt.Errorf("failed to restore: %w", err),
			})
			continue
		}

		result.Restored = append(result.Restored, original)
	}

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("restore completed with %d failures", len(result.Errors))
	}
	return result, nil
}
