package filter

import (
	"testing"

	"github.com/sadopc/backlogr/internal/backlog"
)

func rows() []backlog.Entry {
	b := backlog.New()
	b.Append(backlog.Steam, backlog.GameRecord{Title: "Hades", Status: backlog.Completed, Month: "Jun", Year: "2023"})
	b.Append(backlog.Steam, backlog.GameRecord{Title: "Celeste", Status: backlog.Hundred, Month: "Jan", Year: "2018"})
	b.Append(backlog.Nintendo, backlog.GameRecord{Title: "Metroid Dread", Status: backlog.InProgress})
	b.Append(backlog.Epic, backlog.GameRecord{Title: "Control", Status: backlog.OnHold, Year: "2021"})
	b.Append(backlog.Xbox, backlog.GameRecord{Title: "Halo Infinite", Status: backlog.NotStarted})
	return b.Rows()
}

func TestMatches(t *testing.T) {
	hades := backlog.GameRecord{Title: "Hades", Status: backlog.Completed, Month: "Jun", Year: "2023"}
	celeste := backlog.GameRecord{Title: "Celeste", Status: backlog.Hundred}
	dread := backlog.GameRecord{Title: "Metroid Dread", Status: backlog.InProgress}

	tests := []struct {
		name  string
		g     backlog.GameRecord
		p     backlog.Platform
		query string
		want  bool
	}{
		{"empty query", hades, backlog.Steam, "", true},
		{"title", hades, backlog.Steam, "had", true},
		{"title case-insensitive", hades, backlog.Steam, "HADES", true},
		{"platform", hades, backlog.Steam, "stea", true},
		{"status tag", hades, backlog.Steam, "completed", true},
		{"month", hades, backlog.Steam, "jun", true},
		{"year", hades, backlog.Steam, "2023", true},
		{"hundred alias", celeste, backlog.Steam, "100%", true},
		{"hundred tag", celeste, backlog.Steam, "hundred", true},
		{"in progress alias", dread, backlog.Nintendo, "in progress", true},
		{"in progress tag", dread, backlog.Nintendo, "inprogress", true},
		{"no match", hades, backlog.Steam, "zelda", false},
		{"other platform", hades, backlog.Steam, "xbox", false},
		{"across fields", hades, backlog.Steam, "hadessteam", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.g, tt.p, tt.query); got != tt.want {
				t.Fatalf("Matches(%q, %s, %q) = %v, want %v", tt.g.Title, tt.p, tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchesStatusAliases(t *testing.T) {
	tests := []struct {
		s     backlog.Status
		query string
	}{
		{backlog.NotStarted, "not started"},
		{backlog.OnHold, "on hold"},
		{backlog.InProgress, "in progress"},
		{backlog.Hundred, "100%"},
	}
	for _, tt := range tests {
		g := backlog.GameRecord{Title: "X", Status: tt.s}
		if !Matches(g, backlog.Epic, tt.query) {
			t.Errorf("%s should match %q", tt.s, tt.query)
		}
	}
}

func TestMatchesUnknownStatus(t *testing.T) {
	g := backlog.GameRecord{Title: "Starfield", Status: "Abandoned"}
	if !Matches(g, backlog.Xbox, "abandon") {
		t.Fatal("unknown status tag should still be searchable")
	}
}

func TestMatchesWishlist(t *testing.T) {
	w := backlog.WishlistRecord{Title: "Hollow Knight: Silksong"}
	if !MatchesWishlist(w, "") || !MatchesWishlist(w, "silk") || !MatchesWishlist(w, "KNIGHT") {
		t.Fatal("expected wishlist matches")
	}
	if MatchesWishlist(w, "wishlist") {
		t.Fatal("wishlist filter should test the title only")
	}
}

func TestGamesEmptyQueryKeepsAll(t *testing.T) {
	all := rows()
	if got := Games(all, ""); len(got) != len(all) {
		t.Fatalf("empty query kept %d of %d rows", len(got), len(all))
	}
}

func TestGamesSubsetOfAll(t *testing.T) {
	all := rows()
	for _, q := range []string{"a", "steam", "20", "on", "100%", "zzz", "e"} {
		got := Games(all, q)
		if len(got) > len(all) {
			t.Fatalf("query %q kept more rows than the empty query", q)
		}
		for _, r := range got {
			found := false
			for _, a := range all {
				if a == r {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("query %q returned a row not in the full set: %+v", q, r)
			}
		}
	}
}

func TestGamesKeepsIndices(t *testing.T) {
	got := Games(rows(), "celeste")
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Platform != backlog.Steam || got[0].Index != 1 {
		t.Fatalf("filtered row lost its address: %+v", got[0])
	}
}

func TestWishlist(t *testing.T) {
	b := backlog.New()
	b.AppendWish(backlog.WishlistRecord{Title: "Silksong"})
	b.AppendWish(backlog.WishlistRecord{Title: "Hades II"})
	b.AppendWish(backlog.WishlistRecord{Title: "Hollow Knight"})

	got := Wishlist(b.WishRows(), "ho")
	if len(got) != 1 || got[0].Index != 2 {
		t.Fatalf("unexpected wishlist filter result: %+v", got)
	}
	if len(Wishlist(b.WishRows(), "")) != 3 {
		t.Fatal("empty query should keep the whole wishlist")
	}
}
