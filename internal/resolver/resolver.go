// Package resolver picks one visible launcher per display name and hides
// the others.
package resolver

import (
	"fmt"
	"os"
	"sort"

	"desktopclean/internal/config"
	"desktopclean/internal/desktop"
	"desktopclean/internal/fsutil"
	"desktopclean/internal/logging"
	"desktopclean/internal/models"
)

// Resolver suppresses every duplicate but the survivor of each group.
// System files are shadowed by a stub in the user root; user files get
// NoDisplay=true written in place.
type Resolver struct {
	cfg    *config.Config
	logger logging.Logger
}

// Result contains the result of resolving duplicate groups
type Result struct {
	Hidden    int                     // Records suppressed (or that would be)
	Failed    int                     // Records whose suppression failed
	Skipped   int                     // Records outside both roots
	Survivors []models.LauncherRecord // One per group
	Actions   []models.Action
	Changes   []models.FileChange // Content written (or that would be)
}

// New creates a new Resolver
func New(cfg *config.Config, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Discard
	}
	return &Resolver{
		cfg:    cfg,
		logger: logger,
	}
}

// Order returns the records sorted with system files first, then by path.
// The first record is the survivor.
func Order(records []models.LauncherRecord) []models.LauncherRecord {
	sorted := append([]models.LauncherRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ui, uj := sorted[i].Role == models.RoleUser, sorted[j].Role == models.RoleUser
		if ui != uj {
			return !ui
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// Resolve suppresses the non-survivors of each group. Failures are logged
// and not counted; resolution continues with the next record.
func (r *Resolver) Resolve(groups []models.DuplicateGroup) *Result {
	result := &Result{}

	for _, group := range groups {
		if group.Len() < 2 {
			continue
		}

		ordered := Order(group.Records)
		survivor := ordered[0]
		result.Survivors = append(result.Survivors, survivor)
		r.logger.Debugf("Keeping %s for %q", survivor.Path, group.Name)

		for _, rec := range ordered[1:] {
			r.suppress(group.Name, rec, result)
		}
	}

	return result
}

func (r *Resolver) suppress(name string, rec models.LauncherRecord, result *Result) {
	var (
		action models.Action
		change models.FileChange
		err    error
	)

	switch rec.Role {
	case models.RoleSystem:
		action, change, err = r.shadow(name, rec)
	case models.RoleUser:
		action, change, err = r.hideInPlace(name, rec)
	default:
		r.logger.Warnf("Skipping %s: outside the system and user directories", rec.Path)
		result.Skipped++
		return
	}

	if err != nil {
		r.logger.Errorf("Failed to hide %s: %v", rec.Path, err)
		result.Failed++
		result.Actions = append(result.Actions, action.WithError(err))
		return
	}

	result.Hidden++
	result.Actions = append(result.Actions, action)
	result.Changes = append(result.Changes, change)
}

// shadow writes an override stub for a system file into the user root
func (r *Resolver) shadow(name string, rec models.LauncherRecord) (models.Action, models.FileChange, error) {
	target := r.cfg.ShadowPath(rec.Path)
	action := models.Action{Kind: models.ActionShadow, Name: name, Source: rec.Path, Target: target}
	change := models.FileChange{Path: target, After: desktop.Stub(name)}

	// An existing file at the target is overwritten
	if before, err := os.ReadFile(target); err == nil {
		change.Before = before
	}

	r.logger.Debugf("Creating override %s for %s", target, rec.Path)
	if r.cfg.DryRun {
		return action, change, nil
	}

	if err := fsutil.WriteFileAtomic(target, change.After, 0644); err != nil {
		return action, change, fmt.Errorf("failed to write override: %w", err)
	}
	return action, change, nil
}

// hideInPlace rewrites a user file with NoDisplay=true
func (r *Resolver) hideInPlace(name string, rec models.LauncherRecord) (models.Action, models.FileChange, error) {
	action := models.Action{Kind: models.ActionInPlace, Name: name, Source: rec.Path, Target: rec.Path}

	before, err := os.ReadFile(rec.Path)
	if err != nil {
		return action, models.FileChange{Path: rec.Path}, fmt.Errorf("failed to read: %w", err)
	}
	change := models.FileChange{Path: rec.Path, Before: before, After: desktop.MarkHidden(before)}

	r.logger.Debugf("Hiding user launcher %s", rec.Path)
	if r.cfg.DryRun {
		return action, change, nil
	}

	if err := fsutil.WriteFileAtomic(rec.Path, change.After, 0644); err != nil {
		return action, change, fmt.Errorf("failed to rewrite: %w", err)
	}
	return action, change, nil
}
