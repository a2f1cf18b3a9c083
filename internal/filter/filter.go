// Package filter decides which backlog rows a free-text search keeps.
package filter

import (
	"strings"

	"github.com/sadopc/backlogr/internal/backlog"
)

// Matches reports whether query occurs, ignoring case, in any of the game's
// title, platform key, status tag, status alias, month or year. An empty
// query matches every row. Each field is tested on its own, so a query never
// matches across a field boundary.
func Matches(g backlog.GameRecord, p backlog.Platform, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	fields := [...]string{
		g.Title,
		string(p),
		string(g.Status),
		g.Status.Alias(),
		g.Month,
		g.Year,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// MatchesWishlist tests query against the title only.
func MatchesWishlist(w backlog.WishlistRecord, query string) bool {
	q := strings.ToLower(query)
	return q == "" || strings.Contains(strings.ToLower(w.Title), q)
}

// Games keeps the rows matching query. Rows keep their original index.
func Games(rows []backlog.Entry, query string) []backlog.Entry {
	if query == "" {
		return rows
	}
	var out []backlog.Entry
	for _, r := range rows {
		if Matches(r.Game, r.Platform, query) {
			out = append(out, r)
		}
	}
	return out
}

func Wishlist(rows []backlog.WishEntry, query string) []backlog.WishEntry {
	if query == "" {
		return rows
	}
	var out []backlog.WishEntry
	for _, r := range rows {
		if MatchesWishlist(r.Item, query) {
			out = append(out, r)
		}
	}
	return out
}
