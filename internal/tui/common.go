package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/export"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewGames
	viewWishlist
	viewStats
	viewSettings
)

var viewNames = []string{"Dashboard", "Games", "Wishlist", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// backlogMsg carries a fresh snapshot to whichever view asked for it.
type backlogMsg struct {
	backlog backlog.Backlog
}

// changedMsg reports a successful mutation; the app refreshes the active view.
type changedMsg struct {
	text string
}

type exportDoneMsg struct {
	path   string
	format export.Format
}

type importDoneMsg struct {
	path   string
	result backlog.MergeResult
	report backlog.ParseReport
}

// --- Helpers ---

func errCmd(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

func changed(text string) tea.Cmd {
	return func() tea.Msg { return changedMsg{text: text} }
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// clamp keeps v in [lo, hi]; an empty range yields lo.
func clamp(v, lo, hi int) int {
	if v < lo || hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
