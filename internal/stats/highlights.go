package stats

import (
	"fmt"

	"github.com/sadopc/backlogr/internal/backlog"
)

// Highlight is a dashboard line pointing back at its row.
type Highlight struct {
	backlog.Entry
	Label string
}

// Highlights splits b into finished games (Completed or Hundred) and games
// in progress, in row order.
type Highlights struct {
	RecentlyPlayed []Highlight
	InProgress     []Highlight
}

func CollectHighlights(b backlog.Backlog) Highlights {
	var h Highlights
	for _, row := range b.Rows() {
		switch {
		case row.Game.Status.Done():
			h.RecentlyPlayed = append(h.RecentlyPlayed, Highlight{Entry: row, Label: playedLabel(row.Game)})
		case row.Game.Status == backlog.InProgress:
			h.InProgress = append(h.InProgress, Highlight{Entry: row, Label: row.Game.Title})
		}
	}
	return h
}

func playedLabel(g backlog.GameRecord) string {
	if g.Played() {
		return fmt.Sprintf("%s — %s %s", g.Title, g.Month, g.Year)
	}
	return g.Title
}
