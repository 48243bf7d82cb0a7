// Package mimeapps removes repeated and empty application ids from the
// association lists in mimeapps.list files.
package mimeapps

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"desktopclean/internal/backup"
	"desktopclean/internal/config"
	"desktopclean/internal/fsutil"
	"desktopclean/internal/logging"
	"desktopclean/internal/models"
)

// ErrMalformed is returned for an association file that is not valid UTF-8
var ErrMalformed = errors.New("association file is not valid UTF-8")

const (
	separator = ";"
	marker    = ".desktop"
)

// LineStats counts what Clean changed
type LineStats struct {
	LinesChanged   int
	EntriesDropped int
}

// CleanLine dedupes the id list of an association line. Lines without both
// "=" and ".desktop" are returned unchanged.
func CleanLine(line string) string {
	cleaned, _ := cleanLine(line)
	return cleaned
}

func cleanLine(line string) (string, int) {
	if !strings.Contains(line, "=") || !strings.Contains(line, marker) {
		return line, 0
	}

	key, value, _ := strings.Cut(line, "=")
	entries := strings.Split(value, separator)

	seen := make(map[string]bool, len(entries))
	unique := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		unique = append(unique, e)
	}

	// Only repeated ids count as dropped
	dropped := 0
	for _, e := range entries {
		if e != "" {
			dropped++
		}
	}
	dropped -= len(unique)

	cleaned := strings.Join(unique, separator)
	if cleaned != "" {
		cleaned += separator
	}
	return key + "=" + cleaned, dropped
}

// Clean applies CleanLine to every line of content. A carriage return
// ending a line is kept out of the id list and restored afterwards.
func Clean(content string) (string, LineStats) {
	var stats LineStats

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		body, cr := strings.CutSuffix(line, "\r")
		cleaned, dropped := cleanLine(body)
		if cr {
			cleaned += "\r"
		}
		if cleaned != line {
			stats.LinesChanged++
			stats.EntriesDropped += dropped
			lines[i] = cleaned
		}
	}

	return strings.Join(lines, "\n"), stats
}

// Deduplicator cleans each configured association file independently
type Deduplicator struct {
	files   []string
	backups *backup.Manager
	dryRun  bool
	logger  logging.Logger
}

// Result contains the result of cleaning the association files
type Result struct {
	Processed      []string // Files cleaned successfully
	Backups        []string // Backups written
	LinesChanged   int
	EntriesDropped int
	Actions        []models.Action
	Changes        []models.FileChange
}

// FilesCleaned returns the number of association files processed
func (r *Result) FilesCleaned() int {
	return len(r.Processed)
}

// BackupsCreated returns the number of backups written
func (r *Result) BackupsCreated() int {
	return len(r.Backups)
}

// New creates a Deduplicator for the association files of cfg
func New(cfg *config.Config, logger logging.Logger) *Deduplicator {
	if logger == nil {
		logger = logging.Discard
	}
	return &Deduplicator{
		files:   cfg.MimeAppsFiles(),
		backups: backup.New(cfg.BackupSuffix, cfg.DryRun),
		dryRun:  cfg.DryRun,
		logger:  logger,
	}
}

// Run cleans every association file that exists. A failure on one file
// does not stop the others; all failures are joined into the returned error
// alongside the partial result.
func (d *Deduplicator) Run() (*Result, error) {
	result := &Result{}
	var errs []error

	for _, path := range d.files {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				d.logger.Debugf("No association file at %s", path)
				continue
			}
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		if err := d.cleanFile(path, result); err != nil {
			d.logger.Errorf("Error cleaning %s: %v", path, err)
			result.Actions = append(result.Actions, models.Action{Kind: models.ActionRewrite, Source: path}.WithError(err))
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	return result, errors.Join(errs...)
}

func (d *Deduplicator) cleanFile(path string, result *Result) error {
	backupPath, written, err := d.backups.Backup(path)
	if err != nil {
		return err
	}
	if written {
		d.logger.Debugf("Backup created: %s", backupPath)
		result.Backups = append(result.Backups, backupPath)
		result.Actions = append(result.Actions, models.Action{Kind: models.ActionBackup, Source: path, Target: backupPath})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}
	if !utf8.Valid(data) {
		return ErrMalformed
	}

	cleaned, stats := Clean(string(data))
	result.LinesChanged += stats.LinesChanged
	result.EntriesDropped += stats.EntriesDropped

	if stats.LinesChanged > 0 {
		if !d.dryRun {
			if err := fsutil.WriteFileAtomic(path, []byte(cleaned), 0644); err != nil {
				return err
			}
		}
		result.Changes = append(result.Changes, models.FileChange{Path: path, Before: data, After: []byte(cleaned)})
		result.Actions = append(result.Actions, models.Action{Kind: models.ActionRewrite, Source: path, Count: stats.EntriesDropped})
	}

	d.logger.Debugf("Cleaned %s: %d lines changed, %d entries dropped", path, stats.LinesChanged, stats.EntriesDropped)
	result.Processed = append(result.Processed, path)
	return nil
}
