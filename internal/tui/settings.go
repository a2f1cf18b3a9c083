package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/backlogr/internal/store"
)

var settingLabels = map[string]string{
	store.SettingProfileName:     "Profile name",
	store.SettingDefaultPlatform: "Default platform",
	store.SettingExportDir:       "Export folder",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	profileName     *string
	defaultPlatform *string
	exportDir       *string
}

func newSettingsModel(s *store.Store) settingsModel {
	pn, dp, ed := "", "", ""
	return settingsModel{
		store:           s,
		profileName:     &pn,
		defaultPlatform: &dp,
		exportDir:       &ed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		settings, err := st.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load settings: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.profileName = s.store.Setting(store.SettingProfileName, "Player")
	*s.defaultPlatform = s.store.Setting(store.SettingDefaultPlatform, "steam")
	*s.exportDir = s.store.Setting(store.SettingExportDir, "")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Profile name").Value(s.profileName).Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("profile name is required")
				}
				return nil
			}),
			huh.NewSelect[string]().Title("Default platform").
				Description("Preselected when adding a game").
				Options(platformOptions()...).
				Value(s.defaultPlatform),
			huh.NewInput().Title("Export folder").
				Description("Leave empty to export to your home folder").
				Value(s.exportDir),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			return s, errCmd("Save settings", err)
		}
		return s, changed("Settings saved")
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := []struct{ key, value string }{
		{store.SettingProfileName, strings.TrimSpace(*s.profileName)},
		{store.SettingDefaultPlatform, *s.defaultPlatform},
		{store.SettingExportDir, strings.TrimSpace(*s.exportDir)},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for _, setting := range s.settings {
		name, ok := settingLabels[setting.Key]
		if !ok {
			name = setting.Key
		}
		label := lipgloss.NewStyle().Width(24).Render(name)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	if k == store.SettingExportDir && v == "" {
		return "(home folder)"
	}
	return v
}
