package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/stats"
	"github.com/sadopc/backlogr/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	backlog backlog.Backlog
	year    int // month chart year; 0 means the current year
	data    stats.Statistics

	statusChart   barchart.Model
	platformChart barchart.Model
	yearChart     barchart.Model
	monthChart    barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store:         s,
		statusChart:   barchart.New(30, 10),
		platformChart: barchart.New(30, 10),
		yearChart:     barchart.New(30, 10),
		monthChart:    barchart.New(30, 10),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildCharts()
}

func (m statsModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return backlogMsg{backlog: s.Snapshot()}
	}
}

func (m statsModel) chartYear() int {
	if m.year == 0 {
		return m.store.CurrentYear()
	}
	return m.year
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case backlogMsg:
		m.backlog = msg.backlog
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if y := m.chartYear(); y > backlog.MinYear {
				m.year = y - 1
				m.recompute()
			}
		case key.Matches(msg, keys.Right):
			if y := m.chartYear(); y < m.store.CurrentYear() {
				m.year = y + 1
				m.recompute()
			}
		}
	}
	return m, nil
}

func (m *statsModel) recompute() {
	m.data = stats.Compute(m.backlog, m.chartYear())
	m.buildCharts()
}

func (m *statsModel) chartSize() (int, int) {
	w := max(20, (m.width-12)/2)
	h := 10
	if m.height > 36 {
		h = 14
	}
	return w, h
}

func (m *statsModel) buildCharts() {
	w, h := m.chartSize()
	m.statusChart = drawChart(w, h, m.statusBars())
	m.platformChart = drawChart(w, h, m.platformBars())
	m.yearChart = drawChart(w, h, m.yearBars())
	m.monthChart = drawChart(w, h, m.monthBars())
}

func drawChart(w, h int, bars []barchart.BarData) barchart.Model {
	c := barchart.New(w, h)
	if len(bars) == 0 {
		return c
	}
	c.PushAll(bars)
	c.Draw()
	return c
}

func bar(label string, value int, color lipgloss.Color) barchart.BarData {
	return barchart.BarData{
		Label: label,
		Values: []barchart.BarValue{{
			Name:  label,
			Value: float64(value),
			Style: lipgloss.NewStyle().Foreground(color),
		}},
	}
}

func (m statsModel) statusBars() []barchart.BarData {
	var bars []barchart.BarData
	for _, st := range backlog.Statuses {
		bars = append(bars, bar(st.Label(), m.data.StatusCount[st], statusColors[st]))
	}
	return bars
}

func (m statsModel) platformBars() []barchart.BarData {
	var bars []barchart.BarData
	for _, p := range backlog.Platforms {
		bars = append(bars, bar(string(p), m.data.PlatformCount[p], platformColors[p]))
	}
	return bars
}

func (m statsModel) yearBars() []barchart.BarData {
	var bars []barchart.BarData
	for _, y := range m.data.YearsDescending() {
		bars = append(bars, bar(y, m.data.YearCount[y], colorSecondary))
	}
	return bars
}

func (m statsModel) monthBars() []barchart.BarData {
	var bars []barchart.BarData
	for i, v := range m.data.MonthValues() {
		bars = append(bars, bar(backlog.Months[i], v, colorPrimary))
	}
	return bars
}

func (m statsModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d games · %.0f%% complete", m.data.Totals.TotalGames, m.data.Totals.CompletionPercent)),
	)

	chartW, _ := m.chartSize()
	box := lipgloss.NewStyle().Width(chartW + 2).MarginRight(2)

	status := box.Render(lipgloss.JoinVertical(lipgloss.Left, subtitleStyle.Render("By status"), m.statusChart.View()))
	platform := box.Render(lipgloss.JoinVertical(lipgloss.Left, subtitleStyle.Render("By platform"), m.platformChart.View()))

	yearView := m.yearChart.View()
	if len(m.data.YearCount) == 0 {
		yearView = mutedStyle.Render("No play years logged")
	}
	years := box.Render(lipgloss.JoinVertical(lipgloss.Left, subtitleStyle.Render("By year"), yearView))
	months := box.Render(lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(fmt.Sprintf("By month, %d", m.chartYear())), m.monthChart.View()))

	nav := mutedStyle.Render("  ←/→: month chart year")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			lipgloss.JoinHorizontal(lipgloss.Top, status, platform),
			"",
			lipgloss.JoinHorizontal(lipgloss.Top, years, months),
			"", nav,
		),
	)
}
