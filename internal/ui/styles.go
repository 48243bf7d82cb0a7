package ui

import (
	"desktopclean/internal/logging"
	"desktopclean/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Selected   = lipgloss.Color("#4F46E5") // Indigo
	Added      = lipgloss.Color("#A6E3A1") // Diff green
	Removed    = lipgloss.Color("#F38BA8") // Diff red
	HunkColor  = lipgloss.Color("#89B4FA") // Diff blue
)

// Styles
var (
	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1).
			MarginTop(1)

	// Help bar
	HelpBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Section header
	CategoryStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Paths
	FileNameStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Outcome
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	// Muted text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Diff lines
	AddedStyle = lipgloss.NewStyle().
			Foreground(Added)

	RemovedStyle = lipgloss.NewStyle().
			Foreground(Removed)

	HunkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(HunkColor)

	// Notification/Toast styles
	SuccessNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Background(lipgloss.Color("#064E3B")).
				Padding(0, 1).
				Bold(true)

	ErrorNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCA5A5")).
				Background(lipgloss.Color("#7F1D1D")).
				Padding(0, 1).
				Bold(true)

	WarningNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCD34D")).
				Background(lipgloss.Color("#78350F")).
				Padding(0, 1).
				Bold(true)

	InfoNotifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93C5FD")).
			Background(lipgloss.Color("#1E3A5F")).
			Padding(0, 1).
			Bold(true)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Border).
			Padding(0, 2)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Padding(0, 2).
				Bold(true)
)

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// RenderNotification renders a styled notification message
func RenderNotification(msgType string, message string) string {
	var icon string
	var style lipgloss.Style

	switch msgType {
	case "success":
		icon = "✓"
		style = SuccessNotifyStyle
	case "error":
		icon = "✗"
		style = ErrorNotifyStyle
	case "warning":
		icon = "⚠"
		style = WarningNotifyStyle
	case "info":
		icon = "ℹ"
		style = InfoNotifyStyle
	default:
		icon = "•"
		style = MutedStyle
	}

	return style.Render(icon + " " + message)
}

// RenderButton renders a styled button
func RenderButton(label string, active bool) string {
	if active {
		return ButtonActiveStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

// LevelStyle returns the style of a log level prefix
func LevelStyle(level logging.Level) lipgloss.Style {
	switch level {
	case logging.LevelDebug:
		return MutedStyle
	case logging.LevelInfo:
		return InfoStyle
	case logging.LevelWarn:
		return WarningStyle
	case logging.LevelError:
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// LevelPrefix renders a coloured log level prefix
func LevelPrefix(level logging.Level) string {
	return LevelStyle(level).Render(level.String())
}

// ActionIcon returns an icon for an action kind
func ActionIcon(kind models.ActionKind) string {
	switch kind {
	case models.ActionShadow:
		return "◐"
	case models.ActionInPlace:
		return "◌"
	case models.ActionRemove, models.ActionRemoveDir:
		return "✗"
	case models.ActionBackup:
		return "⎘"
	case models.ActionRewrite:
		return "✎"
	default:
		return "•"
	}
}

// ActionStyle returns the style an action is listed with
func ActionStyle(a models.Action) lipgloss.Style {
	if a.Failed() {
		return ErrorStyle
	}
	switch a.Kind {
	case models.ActionRemove, models.ActionRemoveDir:
		return RemovedStyle
	case models.ActionShadow, models.ActionInPlace:
		return WarningStyle
	case models.ActionBackup:
		return MutedStyle
	default:
		return InfoStyle
	}
}
