package components

import (
	"fmt"
	"strings"

	"desktopclean/internal/models"
	"desktopclean/internal/preview"
	"desktopclean/internal/ui"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ReviewModel shows the dry-run plan of a cleaning run and asks the
// operator to apply or cancel it
type ReviewModel struct {
	keys     ui.KeyMap
	help     help.Model
	viewport viewport.Model
	diffView *DiffView

	actions []models.Action
	stats   models.RunStatistics

	showDiff  bool
	confirmed bool
	width     int
	height    int
}

// NewReviewModel creates a review screen for the planned actions
func NewReviewModel(actions []models.Action, stats models.RunStatistics, diffs []*preview.DiffResult) ReviewModel {
	dv := NewDiffView()
	dv.SetDiffs(diffs)

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := ReviewModel{
		keys:     ui.DefaultKeyMap(),
		help:     help.New(),
		viewport: vp,
		diffView: dv,
		actions:  actions,
		stats:    stats,
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

// Init implements tea.Model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(5, msg.Height-m.chromeHeight())
		m.diffView.Width = m.viewport.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
			m.confirmed = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.showDiff = !m.showDiff
			m.refresh()
		case key.Matches(msg, m.keys.Highlight):
			m.diffView.ToggleHighlight()
			if m.showDiff {
				m.refresh()
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.viewport.Height = max(5, m.height-m.chromeHeight())
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.ViewDown()
		case key.Matches(msg, m.keys.Home):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.End):
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n")
	b.WriteString(ui.HelpBarStyle.Render(m.help.View(m.keys)))

	return ui.AppStyle.Render(b.String())
}

// Confirmed reports whether the operator chose to apply the plan
func (m ReviewModel) Confirmed() bool {
	return m.confirmed
}

// ShowingDiff reports whether the diff view is active
func (m ReviewModel) ShowingDiff() bool {
	return m.showDiff
}

func (m *ReviewModel) refresh() {
	if m.showDiff {
		m.viewport.SetContent(m.diffView.Render())
	} else {
		m.viewport.SetContent(ui.RenderActions(m.actions))
	}
	m.viewport.GotoTop()
}

func (m ReviewModel) renderHeader() string {
	title := ui.TitleStyle.Render("desktopclean") + ui.MutedStyle.Render(" · review ") +
		m.renderTab("plan", !m.showDiff) + " " + m.renderTab("diff", m.showDiff)
	counts := fmt.Sprintf("%d Wine files · %d duplicates · %d association files",
		m.stats.WineFilesRemoved, m.stats.DuplicatesHidden, m.stats.MimeDuplicatesCleaned)
	return title + "\n" + ui.InfoStyle.Render(counts) + "\n" + ui.MutedStyle.Render(strings.Repeat("─", max(10, m.width-4)))
}

func (m ReviewModel) renderTab(label string, active bool) string {
	if active {
		return ui.SelectedItemStyle.Render(label)
	}
	return ui.MutedStyle.Render(label)
}

// renderButtons renders the apply and cancel choices; apply is the default
func (m ReviewModel) renderButtons() string {
	return ui.RenderButton("Apply (y)", true) + "  " + ui.RenderButton("Cancel (n)", false)
}

// chromeHeight is the number of lines around the viewport
func (m ReviewModel) chromeHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = len(m.keys.FullHelp()[0])
	}
	return 5 + helpLines
}

// RunReview shows the review screen and reports whether the operator
// confirmed
func RunReview(actions []models.Action, stats models.RunStatistics, diffs []*preview.DiffResult) (bool, error) {
	p := tea.NewProgram(NewReviewModel(actions, stats, diffs), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("review screen failed: %w", err)
	}
	return final.(ReviewModel).Confirmed(), nil
}
