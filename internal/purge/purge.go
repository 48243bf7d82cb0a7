// Package purge removes launcher files generated by the Wine compatibility
// layer from the user launcher directory.
package purge

import (
	"os"
	"path/filepath"
	"sort"

	"desktopclean/internal/fsutil"
	"desktopclean/internal/logging"
	"desktopclean/internal/models"
)

// Patterns matched directly in the user root
var filePatterns = []string{
	"wine-extension-*.desktop",
	"wine-protocol-*.desktop",
}

// removeFile deletes one launcher file
var removeFile = os.Remove

const (
	backupDirPattern  = "backup_*"
	backupFilePattern = "wine-*.desktop"
)

// Purger deletes compatibility-layer launcher files under one root
type Purger struct {
	root   string
	dryRun bool
	logger logging.Logger
}

// Result contains the result of a purge
type Result struct {
	Removed []string        // Launcher files removed (or that would be)
	Dirs    []string        // Backup directories removed (or that would be)
	Count   int             // Matching files removed, including those inside Dirs
	Failed  int             // Items that could not be removed
	Actions []models.Action // One entry per file or directory, failures included
}

// Excluded returns the removed launcher files as a set
func (r *Result) Excluded() map[string]bool {
	set := make(map[string]bool, len(r.Removed))
	for _, path := range r.Removed {
		set[path] = true
	}
	return set
}

// New creates a new Purger for root
func New(root string, dryRun bool, logger logging.Logger) *Purger {
	if logger == nil {
		logger = logging.Discard
	}
	return &Purger{
		root:   root,
		dryRun: dryRun,
		logger: logger,
	}
}

// Run removes matching files and backup directories. A failed removal is
// logged and not counted; the rest of the purge continues.
func (p *Purger) Run() *Result {
	result := &Result{}

	for _, path := range p.collectFiles() {
		action := models.Action{Kind: models.ActionRemove, Source: path, Count: 1}
		p.logger.Debugf("Removing Wine file: %s", filepath.Base(path))

		if !p.dryRun {
			// A file gone before removal counts as a failure, not a removal
			if err := removeFile(path); err != nil {
				p.logger.Warnf("Failed to remove %s: %v", path, err)
				result.Failed++
				result.Actions = append(result.Actions, action.WithError(err))
				continue
			}
		}

		result.Removed = append(result.Removed, path)
		result.Count++
		result.Actions = append(result.Actions, action)
	}

	for _, dir := range p.collectDirs() {
		matches, err := fsutil.Glob(dir, backupFilePattern)
		if err != nil {
			p.logger.Warnf("Could not list %s: %v", dir, err)
			continue
		}
		if len(matches) == 0 {
			continue
		}

		action := models.Action{Kind: models.ActionRemoveDir, Source: dir, Count: len(matches)}
		p.logger.Debugf("Removing backup directory with Wine files: %s", dir)

		if !p.dryRun {
			if err := os.RemoveAll(dir); err != nil {
				p.logger.Warnf("Failed to remove %s: %v", dir, err)
				result.Failed++
				result.Actions = append(result.Actions, action.WithError(err))
				continue
			}
		}

		result.Dirs = append(result.Dirs, dir)
		result.Count += len(matches)
		result.Actions = append(result.Actions, action)
	}

	return result
}

// collectFiles returns the launcher files matching any pattern, sorted
func (p *Purger) collectFiles() []string {
	var files []string
	for _, pattern := range filePatterns {
		matches, err := fsutil.Glob(p.root, pattern)
		if err != nil {
			p.logger.Warnf("Could not list %s: %v", p.root, err)
			return nil
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}

// collectDirs returns the backup directories directly under root, sorted
func (p *Purger) collectDirs() []string {
	matches, err := fsutil.Glob(p.root, backupDirPattern)
	if err != nil {
		p.logger.Warnf("Could not list %s: %v", p.root, err)
		return nil
	}

	var dirs []string
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, m)
	}
	return dirs
}
