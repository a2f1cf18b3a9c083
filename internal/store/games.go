package store

import (
	"github.com/sadopc/backlogr/internal/backlog"
)

// AddGame appends g to platform. Unknown platforms are ignored. The record
// is normalized first: an empty title returns backlog.ErrEmptyTitle and a
// missing status becomes NotStarted.
func (s *Store) AddGame(platform string, g backlog.GameRecord) error {
	p, ok := backlog.ParsePlatform(platform)
	if !ok {
		s.log.Debugw("add game: unknown platform", "platform", platform)
		return nil
	}
	g = g.Normalize()
	if err := g.Validate(s.CurrentYear()); err != nil {
		return err
	}
	err := s.update(func(b *backlog.Backlog) bool {
		b.Append(p, g)
		return true
	})
	if err == nil {
		s.log.WithFields("platform", p).Infow("game added", "title", g.Title, "status", g.Status)
	}
	return err
}

// UpdateField sets one of status, month or year on the game at index.
// Unknown platforms and out-of-range indices are ignored; invalid values
// return backlog.ErrInvalidValue.
func (s *Store) UpdateField(platform string, index int, field backlog.Field, value string) error {
	return s.UpdateFields(platform, index, map[backlog.Field]string{field: value})
}

// UpdateFields applies every change to the game at index in a single write.
// If any value is invalid nothing is changed.
func (s *Store) UpdateFields(platform string, index int, changes map[backlog.Field]string) error {
	p, ok := backlog.ParsePlatform(platform)
	if !ok || len(changes) == 0 {
		return nil
	}
	s.mu.RLock()
	_, ok = s.data.Game(p, index)
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	for field, value := range changes {
		if err := backlog.ValidateField(field, value, s.CurrentYear()); err != nil {
			return err
		}
	}
	return s.update(func(b *backlog.Backlog) bool {
		applied := false
		for field, value := range changes {
			if b.Set(p, index, field, value) {
				applied = true
			}
		}
		return applied
	})
}

// DeleteGame removes the game at index. Later games on the same platform move
// down one position.
func (s *Store) DeleteGame(platform string, index int) error {
	p, ok := backlog.ParsePlatform(platform)
	if !ok {
		return nil
	}
	var removed backlog.GameRecord
	err := s.update(func(b *backlog.Backlog) bool {
		g, ok := b.Game(p, index)
		if !ok {
			return false
		}
		removed = g
		return b.Remove(p, index)
	})
	if err == nil && removed.Title != "" {
		s.log.WithFields("platform", p).Infow("game deleted", "index", index, "title", removed.Title)
	}
	return err
}

// Games returns a copy of the games on platform, or nil for an unknown key.
func (s *Store) Games(platform string) []backlog.GameRecord {
	p, ok := backlog.ParsePlatform(platform)
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]backlog.GameRecord(nil), s.data.Games[p]...)
}

// Import merges src into the backlog and persists once. Records whose
// (title, month, year) already exist on their platform are skipped; nothing
// already stored is modified.
func (s *Store) Import(src backlog.Backlog) (backlog.MergeResult, error) {
	var res backlog.MergeResult
	err := s.update(func(b *backlog.Backlog) bool {
		res = backlog.Merge(b, src)
		return res.Added() > 0
	})
	if err != nil {
		return backlog.MergeResult{}, err
	}
	s.log.Infow("import merged", "games", res.Games, "wishlist", res.Wishlist, "duplicates", res.Duplicates)
	return res, nil
}
