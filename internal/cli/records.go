package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/backlogr/internal/backlog"
)

func platformArg(s string) (backlog.Platform, error) {
	p, ok := backlog.ParsePlatform(s)
	if !ok {
		return "", fmt.Errorf("unknown platform %q: want one of %s", s, platformList())
	}
	return p, nil
}

func platformList() string {
	names := make([]string, len(backlog.Platforms))
	for i, p := range backlog.Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// statusArg accepts a status tag or its label. Anything else is passed
// through unchanged so validation reports it.
func statusArg(s string) backlog.Status {
	if st, ok := backlog.ParseStatus(s); ok {
		return st
	}
	return backlog.Status(strings.TrimSpace(s))
}

// positionArg turns the 1-based number shown by list into an index.
func positionArg(s string, n int) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil || pos < 1 || pos > n {
		return 0, fmt.Errorf("no entry #%s (have %d)", s, n)
	}
	return pos - 1, nil
}

func newAddCommand(a *app) *cobra.Command {
	var status, month, year string

	cmd := &cobra.Command{
		Use:   "add <platform> <title>",
		Short: "Add a game to a platform",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := platformArg(args[0])
			if err != nil {
				return err
			}
			g := backlog.GameRecord{
				Title:  strings.Join(args[1:], " "),
				Status: statusArg(status),
				Month:  month,
				Year:   year,
			}
			if err := a.store.AddGame(string(p), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", strings.TrimSpace(g.Title), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "NotStarted, InProgress, OnHold, Completed or Hundred (default NotStarted)")
	cmd.Flags().StringVar(&month, "month", "", "month played, Jan through Dec")
	cmd.Flags().StringVar(&year, "year", "", "four-digit year played")
	return cmd
}

func newWishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wish <title>",
		Short: "Add a title to the wishlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if err := a.store.AddWishlistItem(title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to the wishlist\n", strings.TrimSpace(title))
			return nil
		},
	}
}

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <platform> <number> <status|month|year> [value]",
		Short: "Change the status, month or year of a game",
		Long: "Change one field of the game listed under <number> by `backlogr list`. " +
			"Leave the value off to clear the month or year.",
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := platformArg(args[0])
			if err != nil {
				return err
			}
			idx, err := positionArg(args[1], len(a.store.Games(string(p))))
			if err != nil {
				return err
			}
			field, ok := backlog.ParseField(args[2])
			if !ok {
				return fmt.Errorf("%w: field %q", backlog.ErrInvalidValue, args[2])
			}
			var value string
			if len(args) == 4 {
				value = strings.TrimSpace(args[3])
			}
			if field == backlog.FieldStatus {
				value = string(statusArg(value))
			}

			if err := a.store.UpdateField(string(p), idx, field, value); err != nil {
				return err
			}
			g := a.store.Games(string(p))[idx]
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q: %s = %q\n", g.Title, field, value)
			return nil
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <platform|wishlist> <number>",
		Short: "Remove a game or wishlist item",
		Long: "Remove the entry listed under <number>. Later entries on the same " +
			"platform move up by one, so list again before removing another.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if strings.EqualFold(strings.TrimSpace(args[0]), backlog.WishlistKey) {
				items := a.store.Wishlist()
				idx, err := positionArg(args[1], len(items))
				if err != nil {
					return err
				}
				if err := a.store.DeleteWishlistItem(idx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %q from the wishlist\n", items[idx].Title)
				return nil
			}

			p, err := platformArg(args[0])
			if err != nil {
				return err
			}
			games := a.store.Games(string(p))
			idx, err := positionArg(args[1], len(games))
			if err != nil {
				return err
			}
			if err := a.store.DeleteGame(string(p), idx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %q from %s\n", games[idx].Title, p)
			return nil
		},
	}
}
