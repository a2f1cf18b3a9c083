// Package backlog holds the game backlog data model: the platform and status
// vocabularies, the records kept per platform and on the wishlist, and the
// in-memory operations the store builds its mutations from.
//
// Records are addressed by (platform, position). Positions are not stable:
// removing a record shifts every later record on the same platform down by
// one, so callers must re-read rows after any deletion.
package backlog

import (
	"strconv"
	"strings"
)

// Platform is one of the fixed platform keys games are grouped under.
type Platform string

const (
	Epic        Platform = "epic"
	Nintendo    Platform = "nintendo"
	PlayStation Platform = "playstation"
	Steam       Platform = "steam"
	Xbox        Platform = "xbox"
)

// Platforms lists every platform in document order.
var Platforms = []Platform{Epic, Nintendo, PlayStation, Steam, Xbox}

// WishlistKey is the document key the wishlist is stored under.
const WishlistKey = "wishlist"

// ParsePlatform matches s against the platform keys, ignoring case and
// surrounding whitespace.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Status is the completion state of a game.
type Status string

const (
	NotStarted Status = "NotStarted"
	InProgress Status = "InProgress"
	OnHold     Status = "OnHold"
	Completed  Status = "Completed"
	Hundred    Status = "Hundred" // played to 100%
)

// Statuses lists every status in picker order.
var Statuses = []Status{NotStarted, InProgress, OnHold, Completed, Hundred}

func (s Status) Valid() bool {
	switch s {
	case NotStarted, InProgress, OnHold, Completed, Hundred:
		return true
	}
	return false
}

// Done reports whether s counts towards the completed total.
func (s Status) Done() bool {
	return s == Completed || s == Hundred
}

// Label is the display name shown in pickers and tables.
func (s Status) Label() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case InProgress:
		return "In Progress"
	case OnHold:
		return "On Hold"
	case Hundred:
		return "100%"
	}
	return string(s)
}

// Alias is the lower-case human form used by search.
func (s Status) Alias() string {
	return strings.ToLower(s.Label())
}

// ParseStatus accepts a status tag or its label, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	q := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if q == strings.ToLower(string(st)) || q == st.Alias() {
			return st, true
		}
	}
	return "", false
}

// Months holds the three-letter month tags in calendar order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthNames holds the full month names, aligned with Months.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func IsMonth(s string) bool {
	for _, m := range Months {
		if s == m {
			return true
		}
	}
	return false
}

// MinYear is the earliest year a game can be logged against.
const MinYear = 1980

// ValidYear reports whether y is a four-digit year in [MinYear, currentYear].
func ValidYear(y string, currentYear int) bool {
	if len(y) != 4 {
		return false
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		return false
	}
	return n >= MinYear && n <= currentYear
}

// Years returns the selectable years, newest first.
func Years(currentYear int) []string {
	var years []string
	for y := currentYear; y >= MinYear; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

type GameRecord struct {
	Title  string `json:"title" validate:"required"`
	Status Status `json:"status" validate:"status"`
	Month  string `json:"month" validate:"omitempty,month"`
	Year   string `json:"year" validate:"omitempty,len=4,numeric"`
}

// Played reports whether both month and year are set.
func (g GameRecord) Played() bool {
	return g.Month != "" && g.Year != ""
}

type WishlistRecord struct {
	Title string `json:"title"`
}

// Field names a mutable GameRecord field.
type Field string

const (
	FieldStatus Field = "status"
	FieldMonth  Field = "month"
	FieldYear   Field = "year"
)

// Backlog is every tracked game, grouped by platform, plus the wishlist.
type Backlog struct {
	Games    map[Platform][]GameRecord
	Wishlist []WishlistRecord
}

// New returns an empty backlog with every platform present.
func New() Backlog {
	b := Backlog{
		Games:    make(map[Platform][]GameRecord, len(Platforms)),
		Wishlist: []WishlistRecord{},
	}
	for _, p := range Platforms {
		b.Games[p] = []GameRecord{}
	}
	return b
}

// Clone returns a deep copy that shares no slices with b.
func (b Backlog) Clone() Backlog {
	c := New()
	for _, p := range Platforms {
		c.Games[p] = append(c.Games[p], b.Games[p]...)
	}
	c.Wishlist = append(c.Wishlist, b.Wishlist...)
	return c
}

// Len is the number of games across all platforms. The wishlist is not
// counted.
func (b Backlog) Len() int {
	n := 0
	for _, p := range Platforms {
		n += len(b.Games[p])
	}
	return n
}

func (b Backlog) Game(p Platform, i int) (GameRecord, bool) {
	games := b.Games[p]
	if i < 0 || i >= len(games) {
		return GameRecord{}, false
	}
	return games[i], true
}

func (b *Backlog) Append(p Platform, g GameRecord) {
	if b.Games == nil {
		b.Games = make(map[Platform][]GameRecord, len(Platforms))
	}
	b.Games[p] = append(b.Games[p], g)
}

func (b *Backlog) AppendWish(w WishlistRecord) {
	b.Wishlist = append(b.Wishlist, w)
}

// Remove deletes the game at i on p. It returns false and leaves b untouched
// when i is out of range.
func (b *Backlog) Remove(p Platform, i int) bool {
	games := b.Games[p]
	if i < 0 || i >= len(games) {
		return false
	}
	b.Games[p] = append(games[:i:i], games[i+1:]...)
	return true
}

func (b *Backlog) RemoveWish(i int) bool {
	if i < 0 || i >= len(b.Wishlist) {
		return false
	}
	b.Wishlist = append(b.Wishlist[:i:i], b.Wishlist[i+1:]...)
	return true
}

// Set writes value into field of the game at i on p. Values are not
// validated here.
func (b *Backlog) Set(p Platform, i int, field Field, value string) bool {
	games := b.Games[p]
	if i < 0 || i >= len(games) {
		return false
	}
	switch field {
	case FieldStatus:
		games[i].Status = Status(value)
	case FieldMonth:
		games[i].Month = value
	case FieldYear:
		games[i].Year = value
	default:
		return false
	}
	return true
}

// Entry is one materialized game row with its current position.
type Entry struct {
	Platform Platform
	Index    int
	Game     GameRecord
}

// WishEntry is one materialized wishlist row with its current position.
type WishEntry struct {
	Index int
	Item  WishlistRecord
}

// Rows lists every game in platform order, then insertion order.
func (b Backlog) Rows() []Entry {
	rows := make([]Entry, 0, b.Len())
	for _, p := range Platforms {
		for i, g := range b.Games[p] {
			rows = append(rows, Entry{Platform: p, Index: i, Game: g})
		}
	}
	return rows
}

func (b Backlog) WishRows() []WishEntry {
	rows := make([]WishEntry, 0, len(b.Wishlist))
	for i, w := range b.Wishlist {
		rows = append(rows, WishEntry{Index: i, Item: w})
	}
	return rows
}
