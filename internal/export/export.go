// Package export reads and writes backlog files: the JSON exchange document
// that round-trips through import, and a flat CSV sheet for spreadsheets.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/backlogr/internal/backlog"
)

type Format int

const (
	JSON Format = iota
	CSV
)

// Formats lists the formats in picker order.
var Formats = []Format{JSON, CSV}

func (f Format) String() string {
	if f == CSV {
		return "CSV"
	}
	return "JSON"
}

// FileName is the default file name for f.
func (f Format) FileName() string {
	if f == CSV {
		return strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)) + ".csv"
	}
	return DefaultFileName
}

// Write saves b to path in format f.
func Write(b backlog.Backlog, path string, f Format) error {
	if f == CSV {
		return ToCSV(b, path)
	}
	return ToJSON(b, path)
}

// DefaultPath joins dir and the default file name for f. An empty dir means
// the user's home directory.
func DefaultPath(dir string, f Format) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home dir: %w", err)
		}
		dir = home
	}
	return filepath.Join(dir, f.FileName()), nil
}
