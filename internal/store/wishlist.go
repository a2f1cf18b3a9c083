package store

import (
	"strings"

	"github.com/sadopc/backlogr/internal/backlog"
)

func (s *Store) AddWishlistItem(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return backlog.ErrEmptyTitle
	}
	err := s.update(func(b *backlog.Backlog) bool {
		b.AppendWish(backlog.WishlistRecord{Title: title})
		return true
	})
	if err == nil {
		s.log.Infow("wishlist item added", "title", title)
	}
	return err
}

// DeleteWishlistItem removes the item at index; out-of-range is a no-op.
func (s *Store) DeleteWishlistItem(index int) error {
	return s.update(func(b *backlog.Backlog) bool {
		return b.RemoveWish(index)
	})
}

func (s *Store) Wishlist() []backlog.WishlistRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]backlog.WishlistRecord(nil), s.data.Wishlist...)
}
