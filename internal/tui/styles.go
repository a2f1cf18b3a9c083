package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/backlog"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
	colorGold      = lipgloss.Color("#F1C40F")
)

// Platform brand colors, used for dots and chart bars.
var platformColors = map[backlog.Platform]lipgloss.Color{
	backlog.Epic:        lipgloss.Color("#A0A0A0"),
	backlog.Nintendo:    lipgloss.Color("#E60012"),
	backlog.PlayStation: lipgloss.Color("#2E6DB4"),
	backlog.Steam:       lipgloss.Color("#66C0F4"),
	backlog.Xbox:        lipgloss.Color("#107C10"),
}

var statusColors = map[backlog.Status]lipgloss.Color{
	backlog.NotStarted: colorMuted,
	backlog.InProgress: colorHighlight,
	backlog.OnHold:     colorWarning,
	backlog.Completed:  colorSuccess,
	backlog.Hundred:    colorGold,
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Big numbers on the dashboard
	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

func platformDot(p backlog.Platform) string {
	c, ok := platformColors[p]
	if !ok {
		c = colorSubtle
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

// statusBadge renders the status label in its color. Unknown statuses show
// their raw tag.
func statusBadge(s backlog.Status) string {
	c, ok := statusColors[s]
	if !ok {
		c = colorError
	}
	return lipgloss.NewStyle().Foreground(c).Render(s.Label())
}
