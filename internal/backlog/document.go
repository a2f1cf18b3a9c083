package backlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DocumentPrefix tags the persisted and exported document format.
const DocumentPrefix = "gameBacklog"

// ErrMalformedDocument is returned when a payload is not a JSON object.
var ErrMalformedDocument = errors.New("malformed backlog document")

// document is the wire shape. Field order here is the key order on disk.
type document struct {
	Prefix      string           `json:"prefix"`
	Epic        []GameRecord     `json:"epic"`
	Nintendo    []GameRecord     `json:"nintendo"`
	PlayStation []GameRecord     `json:"playstation"`
	Steam       []GameRecord     `json:"steam"`
	Xbox        []GameRecord     `json:"xbox"`
	Wishlist    []WishlistRecord `json:"wishlist"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MarshalJSON writes b in the document shape, with every platform key and
// the wishlist always present.
func (b Backlog) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Prefix:      DocumentPrefix,
		Epic:        nonNil(b.Games[Epic]),
		Nintendo:    nonNil(b.Games[Nintendo]),
		PlayStation: nonNil(b.Games[PlayStation]),
		Steam:       nonNil(b.Games[Steam]),
		Xbox:        nonNil(b.Games[Xbox]),
		Wishlist:    nonNil(b.Wishlist),
	})
}

func (b *Backlog) UnmarshalJSON(data []byte) error {
	parsed, _, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseReport counts what ParseDocument kept and dropped.
type ParseReport struct {
	Games    int
	Wishlist int
	Skipped  int
}

// looseString accepts a JSON string, number or null.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

type looseGame struct {
	Title  string      `json:"title"`
	Status string      `json:"status"`
	Month  string      `json:"month"`
	Year   looseString `json:"year"`
}

// ParseDocument decodes a backlog document leniently. A payload that is not
// a JSON object fails as a whole. Inside it, each record is decoded on its
// own: malformed records and records without a title are skipped, a missing
// status becomes NotStarted and missing month or year stay empty. Keys that
// are absent or not arrays are treated as empty.
func ParseDocument(data []byte) (Backlog, ParseReport, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Backlog{}, ParseReport{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if top == nil {
		return Backlog{}, ParseReport{}, fmt.Errorf("%w: null payload", ErrMalformedDocument)
	}

	var rep ParseReport
	b := New()
	for _, p := range Platforms {
		for _, raw := range rawArray(top[string(p)]) {
			var lg looseGame
			if err := json.Unmarshal(raw, &lg); err != nil {
				rep.Skipped++
				continue
			}
			g := GameRecord{
				Title:  lg.Title,
				Status: Status(strings.TrimSpace(lg.Status)),
				Month:  lg.Month,
				Year:   string(lg.Year),
			}.Normalize()
			if g.Title == "" {
				rep.Skipped++
				continue
			}
			b.Games[p] = append(b.Games[p], g)
			rep.Games++
		}
	}
	for _, raw := range rawArray(top[WishlistKey]) {
		var w WishlistRecord
		if err := json.Unmarshal(raw, &w); err != nil {
			rep.Skipped++
			continue
		}
		w.Title = strings.TrimSpace(w.Title)
		if w.Title == "" {
			rep.Skipped++
			continue
		}
		b.Wishlist = append(b.Wishlist, w)
		rep.Wishlist++
	}
	return b, rep, nil
}

func rawArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
