package store

import (
	"fmt"

	"github.com/sadopc/backlogr/internal/backlog"
)

const (
	SettingProfileName     = "profile_name"
	SettingDefaultPlatform = "default_platform"
	SettingExportDir       = "export_dir"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key. The default platform must be a known
// platform key and is saved lower-case.
func (s *Store) SetSetting(key, value string) error {
	if key == SettingDefaultPlatform {
		p, ok := backlog.ParsePlatform(value)
		if !ok {
			return fmt.Errorf("%w: platform %q", backlog.ErrInvalidValue, value)
		}
		value = string(p)
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Setting returns the value for key, or fallback if it is unset.
func (s *Store) Setting(key, fallback string) string {
	v, err := s.GetSetting(key)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
