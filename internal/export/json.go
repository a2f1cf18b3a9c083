package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sadopc/backlogr/internal/backlog"
)

// DefaultFileName is the name offered when exporting without a path.
const DefaultFileName = "gameBacklog.json"

// Encode renders b as the exchange document, indented with two spaces.
// Every platform key and the wishlist are always present.
func Encode(b backlog.Backlog) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func ToJSON(b backlog.Backlog, path string) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads an exchange document from path. A payload that is not a
// JSON object is an error; individual unreadable records are skipped and
// counted in the report.
func FromJSON(path string) (backlog.Backlog, backlog.ParseReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return backlog.Backlog{}, backlog.ParseReport{}, fmt.Errorf("read json file: %w", err)
	}
	b, rep, err := backlog.ParseDocument(data)
	if err != nil {
		return backlog.Backlog{}, rep, fmt.Errorf("parse %s: %w", path, err)
	}
	return b, rep, nil
}
