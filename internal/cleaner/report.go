package cleaner

import (
	"desktopclean/internal/models"
	"desktopclean/internal/preview"
)

// Report describes what a run did, or would do in dry run
type Report struct {
	DryRun     bool                    `json:"dry_run"`
	Statistics models.RunStatistics    `json:"statistics"`
	Duplicates []models.DuplicateGroup `json:"duplicates"`
	Actions    []models.Action         `json:"actions"`
	Changes    []models.FileChange     `json:"-"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// Diffs returns the line diff of every file change
func (r *Report) Diffs() []*preview.DiffResult {
	diffs := make([]*preview.DiffResult, 0, len(r.Changes))
	for _, c := range r.Changes {
		if d := preview.FromChange(c); d.HasChanges() {
			diffs = append(diffs, d)
		}
	}
	return diffs
}

// Failed returns the actions that could not be applied
func (r *Report) Failed() []models.Action {
	var failed []models.Action
	for _, a := range r.Actions {
		if a.Failed() {
			failed = append(failed, a)
		}
	}
	return failed
}

// ActionsOf returns the actions of the given kind
func (r *Report) ActionsOf(kind models.ActionKind) []models.Action {
	var actions []models.Action
	for _, a := range r.Actions {
		if a.Kind == kind {
			actions = append(actions, a)
		}
	}
	return actions
}
