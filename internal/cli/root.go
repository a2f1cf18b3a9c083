// Package cli wires configuration, logging and the store into the backlogr
// commands. The root command runs the terminal UI.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/backlogr/internal/config"
	"github.com/sadopc/backlogr/internal/log"
	"github.com/sadopc/backlogr/internal/store"
	"github.com/sadopc/backlogr/internal/tui"
)

// app carries what every command needs once PersistentPreRunE has run.
type app struct {
	log   *log.Logger
	store *store.Store
	owned bool // opened here, so closed here

	dbPath   string
	logLevel string
}

// Execute runs the backlogr command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "backlogr",
		Short: "Track your video game backlog",
		Long: "backlogr keeps a per-platform list of the games you own, how far you " +
			"got with each and when you played them, plus a wishlist. Run it " +
			"without a subcommand to open the terminal UI.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewApp(a.store, a.log), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides BACKLOGR_DB_PATH)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newImportCommand(a),
		newExportCommand(a),
		newStatsCommand(a),
		newListCommand(a),
		newAddCommand(a),
		newWishCommand(a),
		newSetCommand(a),
		newRemoveCommand(a),
	)
	return root
}

func (a *app) open() error {
	if a.store != nil {
		if a.log == nil {
			a.log = log.Nop()
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger, err := log.New(log.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	s, err := store.New(cfg.DBPath, store.WithLogger(logger))
	if err != nil {
		logger.Errorw("open store", "path", cfg.DBPath, "error", err)
		return fmt.Errorf("open database: %w", err)
	}
	logger.Debugw("store opened", "path", cfg.DBPath)

	a.log = logger
	a.store = s
	a.owned = true
	return nil
}

func (a *app) close() error {
	if !a.owned {
		return nil
	}
	defer a.log.Sync()
	a.owned = false
	return a.store.Close()
}
