package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/export"
	"github.com/sadopc/backlogr/internal/log"
	"github.com/sadopc/backlogr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	log    *log.Logger
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	importing  bool
	importForm *huh.Form
	importPath *string

	dashboard dashboardModel
	games     gamesModel
	wishlist  wishlistModel
	stats     statsModel
	settings  settingsModel

	help      help.Model
	profile   string
	status    string
	statusErr bool
}

func NewApp(s *store.Store, l *log.Logger) App {
	if l == nil {
		l = log.Nop()
	}
	h := help.New()
	h.ShowAll = false
	path := ""

	return App{
		store:      s,
		log:        l.Named("tui"),
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s),
		games:      newGamesModel(s),
		wishlist:   newWishlistModel(s),
		stats:      newStatsModel(s),
		settings:   newSettingsModel(s),
		help:       h,
		importPath: &path,
		profile:    s.Setting(store.SettingProfileName, "Player"),
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.games.setSize(a.width, contentHeight)
		a.wishlist.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, a.refreshCurrentView()

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.importing {
			return a.updateImportForm(msg)
		}

		// If a child view is capturing input (form or search), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			return a.showImportForm()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewGames)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewWishlist)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewStats)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			a.log.Warnw("ui error", "message", msg.text)
		}
		return a, nil

	case changedMsg:
		a.status = msg.text
		a.statusErr = false
		a.profile = a.store.Setting(store.SettingProfileName, "Player")
		return a, a.refreshCurrentView()

	case exportDoneMsg:
		a.status = fmt.Sprintf("Exported %s to %s", msg.format, msg.path)
		a.statusErr = false
		return a, nil

	case importDoneMsg:
		a.status = importSummary(msg)
		a.statusErr = false
		return a, a.refreshCurrentView()
	}

	if a.importing {
		return a.updateImportForm(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewGames:
		a.games, cmd = a.games.update(msg)
	case viewWishlist:
		a.wishlist, cmd = a.wishlist.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewGames:
		return a.games.capturing()
	case viewWishlist:
		return a.wishlist.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewGames:
		return a.games.refresh()
	case viewWishlist:
		return a.wishlist.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewGames:
		content = a.games.view()
	case viewWishlist:
		content = a.wishlist.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.importing && a.importForm != nil:
		content = a.renderImportForm()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("backlogr")
	if a.profile != "" {
		title += mutedStyle.Render(" · " + a.profile)
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

// --- Export ---

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.String())+mutedStyle.Render("  "+f.FileName()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	s, l := a.store, a.log
	return func() tea.Msg {
		path, err := export.DefaultPath(s.Setting(store.SettingExportDir, ""), format)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		if err := export.Write(s.Snapshot(), path, format); err != nil {
			return statusMsg{text: fmt.Sprintf("%s error: %v", format, err), isError: true}
		}
		l.Infow("exported backlog", "path", path, "format", format)
		return exportDoneMsg{path: path, format: format}
	}
}

// --- Import ---

func (a App) showImportForm() (tea.Model, tea.Cmd) {
	if def, err := export.DefaultPath(a.store.Setting(store.SettingExportDir, ""), export.JSON); err == nil {
		*a.importPath = def
	}

	a.importForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Import from").
				Description("A gameBacklog.json export. Games you already have are skipped.").
				Value(a.importPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.importing = true
	return a, a.importForm.Init()
}

func (a App) updateImportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.importing = false
		a.importForm = nil
		return a, nil
	}

	form, cmd := a.importForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.importForm = f
	}

	if a.importForm.State == huh.StateCompleted {
		a.importing = false
		a.importForm = nil
		return a, a.doImport(strings.TrimSpace(*a.importPath))
	}
	return a, cmd
}

func (a App) doImport(path string) tea.Cmd {
	s, l := a.store, a.log
	return func() tea.Msg {
		src, rep, err := export.FromJSON(path)
		if err != nil {
			l.WithError(err).Warnw("import failed", "path", path)
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		if rep.Skipped > 0 {
			l.Warnw("import skipped unreadable records", "path", path, "skipped", rep.Skipped)
		}
		res, err := s.Import(src)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importDoneMsg{path: path, result: res, report: rep}
	}
}

func importSummary(msg importDoneMsg) string {
	text := fmt.Sprintf("Imported %d games and %d wishlist items", msg.result.Games, msg.result.Wishlist)
	if msg.result.Duplicates > 0 {
		text += fmt.Sprintf(", %d duplicates skipped", msg.result.Duplicates)
	}
	if msg.report.Skipped > 0 {
		text += fmt.Sprintf(", %d unreadable", msg.report.Skipped)
	}
	return text
}

func (a App) renderImportForm() string {
	title := titleStyle.Render("Import")
	return activePanelStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", a.importForm.View()),
	)
}
