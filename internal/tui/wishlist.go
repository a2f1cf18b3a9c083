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

type wishlistModel struct {
	store  *store.Store
	width  int
	height int

	items  []backlog.WishEntry
	rows   []backlog.WishEntry // filtered
	cursor int

	search    textinput.Model
	searching bool

	confirmDelete bool

	formActive bool
	form       *huh.Form
	formTitle  *string
}

func newWishlistModel(s *store.Store) wishlistModel {
	ti := textinput.New()
	ti.Placeholder = "title"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	title := ""
	return wishlistModel{
		store:     s,
		search:    ti,
		formTitle: &title,
	}
}

func (m *wishlistModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = max(10, w-12)
}

func (m wishlistModel) capturing() bool {
	return m.formActive || m.searching || m.confirmDelete
}

func (m wishlistModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return backlogMsg{backlog: s.Snapshot()}
	}
}

func (m *wishlistModel) applyFilter() {
	m.rows = filter.Wishlist(m.items, strings.TrimSpace(m.search.Value()))
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
}

func (m wishlistModel) update(msg tea.Msg) (wishlistModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case backlogMsg:
		m.items = msg.backlog.WishRows()
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.searching:
			return m.updateSearch(msg)
		case m.confirmDelete:
			m.confirmDelete = false
			if msg.String() == "y" && m.cursor < len(m.rows) {
				item := m.rows[m.cursor]
				if err := m.store.DeleteWishlistItem(item.Index); err != nil {
					return m, errCmd("Delete failed", err)
				}
				return m, changed(fmt.Sprintf("Removed %q from the wishlist", item.Item.Title))
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Filter):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, keys.Back):
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.applyFilter()
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			if len(m.rows) > 0 {
				m.confirmDelete = true
			}
		}
	}
	return m, nil
}

func (m wishlistModel) updateSearch(msg tea.KeyMsg) (wishlistModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m wishlistModel) showForm() (wishlistModel, tea.Cmd) {
	*m.formTitle = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return backlog.ErrEmptyTitle
				}
				return nil
			}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m wishlistModel) updateForm(msg tea.Msg) (wishlistModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		title := strings.TrimSpace(*m.formTitle)
		if err := m.store.AddWishlistItem(title); err != nil {
			return m, errCmd("Add failed", err)
		}
		return m, changed(fmt.Sprintf("Added %q to the wishlist", title))
	}
	return m, cmd
}

func (m wishlistModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Add to Wishlist"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Wishlist")+mutedStyle.Render(fmt.Sprintf("  %d of %d", len(m.rows), len(m.items))))
	if m.searching || m.search.Value() != "" {
		rows = append(rows, m.search.View())
	}
	rows = append(rows, "")

	if len(m.rows) == 0 {
		msg := "Wishlist is empty. Press n to add a game."
		if m.search.Value() != "" {
			msg = "Nothing on the wishlist matches the search."
		}
		rows = append(rows, mutedStyle.Render(msg))
	}

	visible := max(3, m.height-10)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(m.rows), start+visible)
	for i := start; i < end; i++ {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+"★ "+truncate(m.rows[i].Item.Title, w-10)))
	}

	rows = append(rows, "")
	if m.confirmDelete && m.cursor < len(m.rows) {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Remove %q from the wishlist? y/n", m.rows[m.cursor].Item.Title)))
	} else {
		rows = append(rows, mutedStyle.Render("  n: add  d: remove  /: search  esc: clear search"))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
