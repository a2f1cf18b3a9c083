package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/filter"
	"github.com/sadopc/backlogr/internal/stats"
	"github.com/sadopc/backlogr/internal/store"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func newStatsCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print totals and breakdowns by status, platform, year and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = a.store.CurrentYear()
			}
			profile := a.store.Setting(store.SettingProfileName, "Player")
			writeStats(cmd.OutOrStdout(), profile, stats.Compute(a.store.Snapshot(), year))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year for the monthly breakdown (default current year)")
	return cmd
}

func writeStats(w io.Writer, profile string, s stats.Statistics) {
	t := s.Totals
	fmt.Fprintf(w, "%s's backlog\n\n", profile)
	fmt.Fprintf(w, "Total games: %d   Completed: %d (%.0f%%)   In progress: %d   On hold: %d   Not started: %d   100%%: %d\n\n",
		t.TotalGames, t.Completed, t.CompletionPercent, t.InProgress, t.OnHold, t.NotStarted, t.Hundred)

	byStatus := newTable("Status", "Games")
	for _, st := range backlog.Statuses {
		byStatus.Row(st.Label(), strconv.Itoa(s.StatusCount[st]))
	}

	byPlatform := newTable("Platform", "Games")
	for _, p := range backlog.Platforms {
		byPlatform.Row(string(p), strconv.Itoa(s.PlatformCount[p]))
	}

	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, byStatus.String(), "  ", byPlatform.String()))

	byYear := newTable("Year", "Games")
	for _, y := range s.YearsDescending() {
		byYear.Row(y, strconv.Itoa(s.YearCount[y]))
	}

	byMonth := newTable("Month "+strconv.Itoa(s.Year), "Games")
	for i, v := range s.MonthValues() {
		byMonth.Row(backlog.Months[i], strconv.Itoa(v))
	}

	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, byYear.String(), "  ", byMonth.String()))
}

func newListCommand(a *app) *cobra.Command {
	var wishlist bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List games (or the wishlist) matching an optional search",
		Long: "List games whose title, platform, status, month or year contains the " +
			"query, ignoring case. The # column is the number set and rm expect.",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			b := a.store.Snapshot()
			out := cmd.OutOrStdout()

			if wishlist {
				rows := filter.Wishlist(b.WishRows(), query)
				if len(rows) == 0 {
					fmt.Fprintln(out, "No wishlist items.")
					return nil
				}
				t := newTable("#", "Title")
				for _, r := range rows {
					t.Row(strconv.Itoa(r.Index+1), r.Item.Title)
				}
				fmt.Fprintln(out, t.String())
				return nil
			}

			rows := filter.Games(b.Rows(), query)
			if len(rows) == 0 {
				fmt.Fprintln(out, "No games.")
				return nil
			}
			t := newTable("Platform", "#", "Title", "Status", "Month", "Year")
			for _, r := range rows {
				t.Row(string(r.Platform), strconv.Itoa(r.Index+1), r.Game.Title, r.Game.Status.Label(), r.Game.Month, r.Game.Year)
			}
			fmt.Fprintln(out, t.String())
			fmt.Fprintf(out, "%d of %d games\n", len(rows), b.Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "list the wishlist instead of games")
	return cmd
}
