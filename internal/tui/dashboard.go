package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/stats"
	"github.com/sadopc/backlogr/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	stats      stats.Statistics
	highlights stats.Highlights
	progress   progress.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:    s,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.progress.Width = max(10, w-12)
}

func (d dashboardModel) refresh() tea.Cmd {
	s := d.store
	return func() tea.Msg {
		return backlogMsg{backlog: s.Snapshot()}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case backlogMsg:
		d.stats = stats.Compute(msg.backlog, d.store.CurrentYear())
		d.highlights = stats.CollectHighlights(msg.backlog)
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	completion := d.renderCompletionPanel(contentWidth)
	summary := d.renderSummaryPanel(contentWidth)

	half := contentWidth / 2
	listRows := max(3, d.height-lipgloss.Height(completion)-lipgloss.Height(summary)-6)
	recent := d.renderHighlightPanel("Recently Played", d.highlights.RecentlyPlayed, half, listRows,
		"Nothing finished yet")
	playing := d.renderHighlightPanel("In Progress", d.highlights.InProgress, contentWidth-half, listRows,
		"Nothing in progress")

	return lipgloss.JoinVertical(lipgloss.Left,
		completion,
		summary,
		lipgloss.JoinHorizontal(lipgloss.Top, recent, playing),
	)
}

func (d dashboardModel) renderCompletionPanel(w int) string {
	t := d.stats.Totals
	title := titleStyle.Render("Completion")
	bar := d.progress.ViewAs(t.CompletionPercent / 100)
	caption := mutedStyle.Render(fmt.Sprintf("%d of %d games finished", t.Completed, t.TotalGames))
	if t.TotalGames == 0 {
		caption = mutedStyle.Render("No games yet. Press 2 then n to add one, or i to import.")
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", bar, caption))
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	t := d.stats.Totals
	cells := []struct {
		label string
		value int
	}{
		{"Total", t.TotalGames},
		{"Completed", t.Completed},
		{"In Progress", t.InProgress},
		{"On Hold", t.OnHold},
		{"Not Started", t.NotStarted},
		{"100%", t.Hundred},
	}

	cellWidth := max(8, (w-6)/len(cells))
	var cols []string
	for _, c := range cells {
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Center,
			countStyle.Width(cellWidth).Render(fmt.Sprintf("%d", c.value)),
			mutedStyle.Width(cellWidth).Align(lipgloss.Center).Render(c.label),
		))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (d dashboardModel) renderHighlightPanel(title string, items []stats.Highlight, w, limit int, empty string) string {
	rows := []string{titleStyle.Render(title)}
	if len(items) == 0 {
		rows = append(rows, mutedStyle.Render(empty))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	for i, h := range items {
		if i == limit {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  …and %d more", len(items)-limit)))
			break
		}
		rows = append(rows, fmt.Sprintf("  %s %s", platformDot(h.Platform), truncate(h.Label, w-10)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
