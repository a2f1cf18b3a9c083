package backlog

// MergeResult counts what Merge appended and skipped.
type MergeResult struct {
	Games      int
	Wishlist   int
	Duplicates int
}

// Added is the total number of records appended.
func (r MergeResult) Added() int {
	return r.Games + r.Wishlist
}

type dedupKey struct {
	title, month, year string
}

func keyOf(g GameRecord) dedupKey {
	return dedupKey{title: g.Title, month: g.Month, year: g.Year}
}

// Merge appends the records of src that dst does not already hold. Games
// are matched per platform on (title, month, year); status plays no part, so
// an existing record is never updated. Wishlist items are matched on title.
// Duplicates within src itself are collapsed too. Order of src is kept.
func Merge(dst *Backlog, src Backlog) MergeResult {
	var res MergeResult
	if dst.Games == nil {
		*dst = New()
	}
	for _, p := range Platforms {
		seen := make(map[dedupKey]struct{}, len(dst.Games[p]))
		for _, g := range dst.Games[p] {
			seen[keyOf(g)] = struct{}{}
		}
		for _, g := range src.Games[p] {
			k := keyOf(g)
			if _, dup := seen[k]; dup {
				res.Duplicates++
				continue
			}
			seen[k] = struct{}{}
			dst.Append(p, g)
			res.Games++
		}
	}

	titles := make(map[string]struct{}, len(dst.Wishlist))
	for _, w := range dst.Wishlist {
		titles[w.Title] = struct{}{}
	}
	for _, w := range src.Wishlist {
		if _, dup := titles[w.Title]; dup {
			res.Duplicates++
			continue
		}
		titles[w.Title] = struct{}{}
		dst.AppendWish(w)
		res.Wishlist++
	}
	return res
}
