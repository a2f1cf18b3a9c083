package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/backlogr/internal/export"
	"github.com/sadopc/backlogr/internal/store"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge an exported backlog file into the backlog",
		Long: "Merge a gameBacklog.json export. Games already present with the same " +
			"title, month and year on the same platform are skipped, and existing " +
			"records are never changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, rep, err := export.FromJSON(args[0])
			if err != nil {
				a.log.WithError(err).Warnw("import failed", "file", args[0])
				return err
			}
			if rep.Skipped > 0 {
				a.log.Warnw("import skipped unreadable records", "file", args[0], "skipped", rep.Skipped)
			}

			res, err := a.store.Import(src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d games and %d wishlist items", res.Games, res.Wishlist)
			if res.Duplicates > 0 {
				fmt.Fprintf(out, ", %d duplicates skipped", res.Duplicates)
			}
			if rep.Skipped > 0 {
				fmt.Fprintf(out, ", %d unreadable records ignored", rep.Skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the backlog to a JSON (or CSV) file",
		Long: "Write the whole backlog to a file. Without a path the file goes to the " +
			"export_dir setting, or the home directory when that is empty.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := export.JSON
			if asCSV {
				format = export.CSV
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := export.DefaultPath(a.store.Setting(store.SettingExportDir, ""), format)
				if err != nil {
					return err
				}
				path = p
			}

			if err := export.Write(a.store.Snapshot(), path, format); err != nil {
				a.log.WithError(err).Errorw("export failed", "path", path, "format", format)
				return err
			}
			a.log.Infow("exported backlog", "path", path, "format", format)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write a flat CSV sheet instead of JSON")
	return cmd
}
