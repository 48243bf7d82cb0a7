package ui

import (
	"errors"
	"strings"
	"testing"

	"desktopclean/internal/models"
)

func TestRenderSummary(t *testing.T) {
	stats := models.RunStatistics{WineFilesRemoved: 3, DuplicatesHidden: 2, MimeDuplicatesCleaned: 1, BackupsCreated: 1}

	out := RenderSummary(stats, false)
	for _, want := range []string{"Wine files removed:", "Duplicates hidden:", "MIME files cleaned:", "Backups created:", "completed successfully"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary:\n%s", want, out)
		}
	}

	if !strings.Contains(RenderSummary(stats, true), "DRY RUN MODE") {
		t.Error("dry run summary should say nothing was changed")
	}
}

func TestRenderActions(t *testing.T) {
	actions := []models.Action{
		{Kind: models.ActionShadow, Name: "Editor", Source: "/s/editor.desktop", Target: "/u/editor.desktop"},
		{Kind: models.ActionRemove, Source: "/u/wine-extension-a.desktop"},
		{Kind: models.ActionShadow, Name: "Viewer", Source: "/s/viewer.desktop", Target: "/u/viewer.desktop"},
		models.Action{Kind: models.ActionRewrite, Source: "/u/mimeapps.list"}.WithError(errors.New("not valid UTF-8")),
	}

	out := RenderActions(actions)

	shadow := strings.Index(out, "Override system launchers (2)")
	remove := strings.Index(out, "Remove Wine launchers (1)")
	if shadow < 0 || remove < 0 || shadow > remove {
		t.Errorf("Expected groups in first-seen order:\n%s", out)
	}
	if !strings.Contains(out, "/s/editor.desktop → /u/editor.desktop") {
		t.Errorf("Expected source and target:\n%s", out)
	}
	if !strings.Contains(out, "not valid UTF-8") {
		t.Error("failed action should show its error")
	}
}

func TestRenderActions_Empty(t *testing.T) {
	if !strings.Contains(RenderActions(nil), "Nothing to do") {
		t.Error("empty plan should say there is nothing to do")
	}
}
