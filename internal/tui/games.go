package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/filter"
	"github.com/sadopc/backlogr/internal/store"
)

type gameForm int

const (
	gameFormAdd gameForm = iota
	gameFormEdit
)

type gamesModel struct {
	store  *store.Store
	width  int
	height int

	backlog backlog.Backlog
	rows    []backlog.Entry // filtered
	cursor  int

	search    textinput.Model
	searching bool

	confirmDelete bool

	formActive bool
	form       *huh.Form
	formType   gameForm
	editing    backlog.Entry

	// Form field pointers (survive value copies)
	formPlatform *string
	formTitle    *string
	formStatus   *string
	formMonth    *string
	formYear     *string
}

func newGamesModel(s *store.Store) gamesModel {
	ti := textinput.New()
	ti.Placeholder = "title, platform, status, month or year"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	platform, title, status, month, year := "", "", "", "", ""
	return gamesModel{
		store:        s,
		search:       ti,
		formPlatform: &platform,
		formTitle:    &title,
		formStatus:   &status,
		formMonth:    &month,
		formYear:     &year,
	}
}

func (g *gamesModel) setSize(w, h int) {
	g.width = w
	g.height = h
	g.search.Width = max(10, w-12)
}

// capturing reports whether keys belong to this view rather than the app.
func (g gamesModel) capturing() bool {
	return g.formActive || g.searching || g.confirmDelete
}

func (g gamesModel) refresh() tea.Cmd {
	s := g.store
	return func() tea.Msg {
		return backlogMsg{backlog: s.Snapshot()}
	}
}

func (g *gamesModel) applyFilter() {
	g.rows = filter.Games(g.backlog.Rows(), strings.TrimSpace(g.search.Value()))
	g.cursor = clamp(g.cursor, 0, len(g.rows)-1)
}

func (g gamesModel) selected() (backlog.Entry, bool) {
	if g.cursor < 0 || g.cursor >= len(g.rows) {
		return backlog.Entry{}, false
	}
	return g.rows[g.cursor], true
}

func (g gamesModel) update(msg tea.Msg) (gamesModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case backlogMsg:
		g.backlog = msg.backlog
		g.applyFilter()
		return g, nil

	case tea.KeyMsg:
		if g.searching {
			return g.updateSearch(msg)
		}
		if g.confirmDelete {
			return g.updateConfirm(msg)
		}
		return g.updateList(msg)
	}
	return g, nil
}

func (g gamesModel) updateList(msg tea.KeyMsg) (gamesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(msg, keys.Down):
		if g.cursor < len(g.rows)-1 {
			g.cursor++
		}
	case key.Matches(msg, keys.Filter):
		g.searching = true
		return g, g.search.Focus()
	case key.Matches(msg, keys.Back):
		if g.search.Value() != "" {
			g.search.SetValue("")
			g.applyFilter()
		}
	case key.Matches(msg, keys.New):
		return g.showAddForm()
	case key.Matches(msg, keys.Edit):
		if _, ok := g.selected(); ok {
			return g.showEditForm()
		}
	case key.Matches(msg, keys.Delete):
		if _, ok := g.selected(); ok {
			g.confirmDelete = true
		}
	}
	return g, nil
}

func (g gamesModel) updateSearch(msg tea.KeyMsg) (gamesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		g.searching = false
		g.search.Blur()
		g.search.SetValue("")
		g.applyFilter()
		return g, nil
	case "enter":
		g.searching = false
		g.search.Blur()
		return g, nil
	}

	var cmd tea.Cmd
	g.search, cmd = g.search.Update(msg)
	g.applyFilter()
	return g, cmd
}

func (g gamesModel) updateConfirm(msg tea.KeyMsg) (gamesModel, tea.Cmd) {
	g.confirmDelete = false
	if msg.String() != "y" {
		return g, nil
	}
	row, ok := g.selected()
	if !ok {
		return g, nil
	}
	if err := g.store.DeleteGame(string(row.Platform), row.Index); err != nil {
		return g, errCmd("Delete failed", err)
	}
	return g, changed(fmt.Sprintf("Deleted %q", row.Game.Title))
}

func statusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(backlog.Statuses))
	for i, st := range backlog.Statuses {
		opts[i] = huh.NewOption(st.Label(), string(st))
	}
	return opts
}

func platformOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(backlog.Platforms))
	for i, p := range backlog.Platforms {
		opts[i] = huh.NewOption(string(p), string(p))
	}
	return opts
}

func monthOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("—", "")}
	for i, m := range backlog.Months {
		opts = append(opts, huh.NewOption(backlog.MonthNames[i], m))
	}
	return opts
}

func yearOptions(currentYear int) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("—", "")}
	for _, y := range backlog.Years(currentYear) {
		opts = append(opts, huh.NewOption(y, y))
	}
	return opts
}

// withCurrent appends v as a raw option when opts has no such value, so a
// select bound to v keeps it instead of falling back to the first option.
func withCurrent(opts []huh.Option[string], v string) []huh.Option[string] {
	for _, o := range opts {
		if o.Value == v {
			return opts
		}
	}
	return append(opts, huh.NewOption(v, v))
}

func (g gamesModel) showAddForm() (gamesModel, tea.Cmd) {
	*g.formPlatform = g.store.Setting(store.SettingDefaultPlatform, string(backlog.Steam))
	*g.formTitle = ""
	*g.formStatus = string(backlog.NotStarted)
	*g.formMonth = ""
	*g.formYear = ""
	g.formType = gameFormAdd

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Platform").Options(platformOptions()...).Value(g.formPlatform),
			huh.NewInput().Title("Title").Value(g.formTitle).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return backlog.ErrEmptyTitle
				}
				return nil
			}),
			huh.NewSelect[string]().Title("Status").Options(statusOptions()...).Value(g.formStatus),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Month played").Options(monthOptions()...).Value(g.formMonth),
			huh.NewSelect[string]().Title("Year played").Options(yearOptions(g.store.CurrentYear())...).Value(g.formYear),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g gamesModel) showEditForm() (gamesModel, tea.Cmd) {
	row, _ := g.selected()
	*g.formStatus = string(row.Game.Status)
	*g.formMonth = row.Game.Month
	*g.formYear = row.Game.Year
	g.formType = gameFormEdit
	g.editing = row

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").
				Options(withCurrent(statusOptions(), *g.formStatus)...).
				Value(g.formStatus),
			huh.NewSelect[string]().Title("Month played").
				Options(withCurrent(monthOptions(), *g.formMonth)...).
				Value(g.formMonth),
			huh.NewSelect[string]().Title("Year played").
				Options(withCurrent(yearOptions(g.store.CurrentYear()), *g.formYear)...).
				Value(g.formYear),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g gamesModel) updateForm(msg tea.Msg) (gamesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.form = nil
		switch g.formType {
		case gameFormAdd:
			return g, g.saveNew()
		case gameFormEdit:
			return g, g.saveEdit()
		}
	}

	return g, cmd
}

func (g gamesModel) saveNew() tea.Cmd {
	rec := backlog.GameRecord{
		Title:  *g.formTitle,
		Status: backlog.Status(*g.formStatus),
		Month:  *g.formMonth,
		Year:   *g.formYear,
	}
	if err := g.store.AddGame(*g.formPlatform, rec); err != nil {
		return errCmd("Add failed", err)
	}
	return changed(fmt.Sprintf("Added %q to %s", strings.TrimSpace(rec.Title), *g.formPlatform))
}

// saveEdit writes only the fields the user changed, in one store update.
func (g gamesModel) saveEdit() tea.Cmd {
	row := g.editing
	current := map[backlog.Field]string{
		backlog.FieldStatus: string(row.Game.Status),
		backlog.FieldMonth:  row.Game.Month,
		backlog.FieldYear:   row.Game.Year,
	}
	edited := map[backlog.Field]string{
		backlog.FieldStatus: *g.formStatus,
		backlog.FieldMonth:  *g.formMonth,
		backlog.FieldYear:   *g.formYear,
	}
	changes := make(map[backlog.Field]string)
	for field, v := range edited {
		if v != current[field] {
			changes[field] = v
		}
	}
	if len(changes) == 0 {
		return nil
	}
	if err := g.store.UpdateFields(string(row.Platform), row.Index, changes); err != nil {
		return errCmd("Update failed", err)
	}
	return changed(fmt.Sprintf("Updated %q", row.Game.Title))
}

func (g gamesModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		title := titleStyle.Render("Add Game")
		if g.formType == gameFormEdit {
			title = titleStyle.Render("Edit " + g.editing.Game.Title)
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", g.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Games")
	count := mutedStyle.Render(fmt.Sprintf("  %d of %d", len(g.rows), g.backlog.Len()))

	var rows []string
	rows = append(rows, title+count)
	if g.searching || g.search.Value() != "" {
		rows = append(rows, g.search.View())
	}
	rows = append(rows, "")

	if len(g.rows) == 0 {
		msg := "No games yet. Press n to add one."
		if g.search.Value() != "" {
			msg = "No games match the search."
		}
		rows = append(rows, mutedStyle.Render(msg))
		rows = append(rows, "", mutedStyle.Render("  n: add  /: search  esc: clear search"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	titleWidth := max(12, w-52)
	header := mutedStyle.Render(fmt.Sprintf("    %-12s %-*s %-12s %-5s %-4s", "Platform", titleWidth, "Title", "Status", "Month", "Year"))
	rows = append(rows, header)

	visible := max(3, g.height-12)
	start := 0
	if g.cursor >= visible {
		start = g.cursor - visible + 1
	}
	end := min(len(g.rows), start+visible)

	for i := start; i < end; i++ {
		r := g.rows[i]
		cursor := "  "
		style := normalItemStyle
		if i == g.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(fmt.Sprintf("%s%s %-12s %-*s ", cursor, platformDot(r.Platform), r.Platform, titleWidth, truncate(r.Game.Title, titleWidth)))
		status := lipgloss.NewStyle().Width(13).Render(statusBadge(r.Game.Status))
		rows = append(rows, line+status+fmt.Sprintf("%-5s %-4s", r.Game.Month, r.Game.Year))
	}

	rows = append(rows, "")
	if g.confirmDelete {
		row, _ := g.selected()
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Delete %q from %s? y/n", row.Game.Title, row.Platform)))
	} else {
		rows = append(rows, mutedStyle.Render("  n: add  enter: edit  d: delete  /: search  esc: clear search"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
