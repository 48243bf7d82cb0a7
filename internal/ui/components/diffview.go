package components

import (
	"fmt"
	"strings"

	"desktopclean/internal/preview"
	"desktopclean/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// DiffView renders the planned rewrites of a run as unified diffs
type DiffView struct {
	Width int

	Diffs []*preview.DiffResult

	// Syntax highlighting
	highlighter     *ui.Highlighter
	enableHighlight bool

	// Styles
	addStyle     lipgloss.Style
	deleteStyle  lipgloss.Style
	contextStyle lipgloss.Style
	headerStyle  lipgloss.Style
}

// NewDiffView creates a new DiffView
func NewDiffView() *DiffView {
	return &DiffView{
		Width:           80,
		highlighter:     ui.NewHighlighter(),
		enableHighlight: true,
		addStyle:        ui.AddedStyle,
		deleteStyle:     ui.RemovedStyle,
		contextStyle:    ui.MutedStyle,
		headerStyle:     ui.HunkStyle,
	}
}

// SetDiffs sets the diffs to display
func (d *DiffView) SetDiffs(diffs []*preview.DiffResult) {
	d.Diffs = diffs
}

// ToggleHighlight toggles syntax highlighting
func (d *DiffView) ToggleHighlight() {
	d.enableHighlight = !d.enableHighlight
}

// Render renders every diff
func (d *DiffView) Render() string {
	if !d.HasChanges() {
		return ui.MutedStyle.Render("No file changes")
	}

	var lines []string
	for _, diff := range d.Diffs {
		if !diff.HasChanges() {
			continue
		}
		lines = append(lines, d.renderHeader(diff))
		for _, hunk := range diff.Hunks {
			lines = append(lines, d.headerStyle.Render(hunk.Header()))
			for _, line := range hunk.Lines {
				lines = append(lines, d.formatDiffLine(diff.Path, line))
			}
		}
		lines = append(lines, "") // Blank line between files
	}

	return strings.Join(lines, "\n")
}

func (d *DiffView) renderHeader(diff *preview.DiffResult) string {
	fileType := ui.GetFileType(diff.Path)
	return fmt.Sprintf("%s  %s  %s",
		ui.FileNameStyle.Render(diff.Path),
		ui.InfoStyle.Render(fileType),
		ui.MutedStyle.Render(diff.Summary()))
}

func (d *DiffView) formatDiffLine(path string, line preview.DiffLine) string {
	content := line.Content
	maxWidth := d.Width - 4
	if maxWidth > 8 && len(content) > maxWidth {
		content = content[:maxWidth-3] + "..."
	}

	// Context lines keep their syntax colours
	if d.enableHighlight && line.Type == preview.DiffEqual && d.highlighter != nil {
		content = d.highlighter.HighlightLine(content, path)
	}

	switch line.Type {
	case preview.DiffInsert:
		return d.addStyle.Render("+ " + content)
	case preview.DiffDelete:
		return d.deleteStyle.Render("- " + content)
	default:
		return d.contextStyle.Render("  ") + content
	}
}

// HasChanges returns true if any diff has changes
func (d *DiffView) HasChanges() bool {
	for _, diff := range d.Diffs {
		if diff.HasChanges() {
			return true
		}
	}
	return false
}

// HunkCount returns the number of hunks across all files
func (d *DiffView) HunkCount() int {
	n := 0
	for _, diff := range d.Diffs {
		n += len(diff.Hunks)
	}
	return n
}
