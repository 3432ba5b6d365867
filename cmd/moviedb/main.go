package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"moviedb/internal/config"
	"moviedb/internal/logging"
	"moviedb/internal/store"
	"moviedb/internal/ui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviedb",
	Short: "moviedb - movie catalog manager",
	Long: `moviedb keeps a movie catalog in a local SQLite file.

Run without arguments to start the interactive menu:
  1. Import movies   (from the configured JSON file, default movies.json)
  2. Query movies
  3. Add movie
  4. Modify movie
  5. Delete movie
  6. Export movies   (to the configured JSON file, default exported.json)
  7. Exit`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logging.For(logger, logging.CategoryBoot).Debug("config loaded",
			zap.String("config", configPath),
			zap.String("database", cfg.DatabasePath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging (to stderr when no log file is configured)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.DatabasePath, logging.For(logger, logging.CategoryStore))
	if err != nil {
		logging.For(logger, logging.CategoryBoot).Error("open store failed",
			zap.String("path", cfg.DatabasePath), zap.Error(err))
		return nil, err
	}
	return st, nil
}

// stylesFor colors output only when it goes to a terminal.
func stylesFor(w io.Writer) ui.Styles {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return ui.DefaultStyles()
	}
	return ui.PlainStyles()
}
