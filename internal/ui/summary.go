package ui

import (
	"fmt"
	"strings"

	"desktopclean/internal/models"
)

// RenderSummary renders the counters of a run
func RenderSummary(stats models.RunStatistics, dryRun bool) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("📊 Operation Summary"))
	b.WriteString("\n")

	rows := []struct {
		label string
		value int
	}{
		{"Wine files removed", stats.WineFilesRemoved},
		{"Duplicates hidden", stats.DuplicatesHidden},
		{"MIME files cleaned", stats.MimeDuplicatesCleaned},
		{"Backups created", stats.BackupsCreated},
	}
	counters := make([]string, len(rows))
	for i, r := range rows {
		value := MutedStyle.Render("0")
		if r.value > 0 {
			value = TitleStyle.Render(fmt.Sprint(r.value))
		}
		counters[i] = fmt.Sprintf("%-20s %s", r.label+":", value)
	}
	b.WriteString(PanelStyle.Render(strings.Join(counters, "\n")))
	b.WriteString("\n\n")
	if dryRun {
		b.WriteString(WarningStyle.Render("⚠️  DRY RUN MODE - No changes were made"))
	} else {
		b.WriteString(SuccessStyle.Render("✅ Cleanup completed successfully!"))
	}
	b.WriteString("\n")

	return b.String()
}

// RenderActions renders the actions of a run grouped by kind, in the order
// each kind first appears
func RenderActions(actions []models.Action) string {
	if len(actions) == 0 {
		return MutedStyle.Render("Nothing to do") + "\n"
	}

	var order []models.ActionKind
	byKind := map[models.ActionKind][]models.Action{}
	for _, a := range actions {
		if _, ok := byKind[a.Kind]; !ok {
			order = append(order, a.Kind)
		}
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}

	var b strings.Builder
	for i, kind := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		group := byKind[kind]
		b.WriteString(CategoryStyle.Render(fmt.Sprintf("%s %s (%d)", ActionIcon(kind), actionTitle(kind), len(group))))
		b.WriteString("\n")
		for _, a := range group {
			b.WriteString("  " + RenderAction(a) + "\n")
		}
	}
	return b.String()
}

// RenderAction renders a single action on one line
func RenderAction(a models.Action) string {
	line := ActionStyle(a).Render(a.Source)
	if a.Target != "" && a.Target != a.Source {
		line += MutedStyle.Render(" → ") + FilePathStyle.Render(a.Target)
	}
	if a.Name != "" {
		line += MutedStyle.Render(fmt.Sprintf("  %q", a.Name))
	}
	if a.Kind == models.ActionRemoveDir && a.Count > 0 {
		line += MutedStyle.Render(fmt.Sprintf("  %d files", a.Count))
	}
	if a.Failed() {
		line += " " + ErrorStyle.Render("✗ "+a.Error)
	}
	return line
}

func actionTitle(kind models.ActionKind) string {
	switch kind {
	case models.ActionShadow:
		return "Override system launchers"
	case models.ActionInPlace:
		return "Hide user launchers"
	case models.ActionRemove:
		return "Remove Wine launchers"
	case models.ActionRemoveDir:
		return "Remove Wine backup directories"
	case models.ActionBackup:
		return "Back up association files"
	case models.ActionRewrite:
		return "Clean association files"
	default:
		return kind.String()
	}
}
