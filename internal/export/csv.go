package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/backlogr/internal/backlog"
)

var csvHeader = []string{"Platform", "Title", "Status", "Month", "Year"}

// ToCSV writes a flat sheet of every game followed by the wishlist. Wishlist
// rows carry the platform "wishlist" and leave the other columns empty.
func ToCSV(b backlog.Backlog, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range b.Rows() {
		row := []string{
			string(r.Platform),
			r.Game.Title,
			string(r.Game.Status),
			r.Game.Month,
			r.Game.Year,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	for _, item := range b.Wishlist {
		if err := w.Write([]string{backlog.WishlistKey, item.Title, "", "", ""}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
