// Package cli implements the wishtracker command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/msomdec/wish-tracker/internal/config"
	"github.com/msomdec/wish-tracker/internal/repository/sqlite"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wishtracker",
	Short: "Wish Tracker keeps a personal list of wishes",
	Long: `Wish Tracker is a personal wish list behind an authenticating proxy.
Wishes move from Wish to In Progress to Achieved and are grouped by
user-defined categories.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./wishtracker.yaml if present)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	loaded, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	)))
	return nil
}

// openDB opens and migrates the configured database.
func openDB(cmd *cobra.Command) (*sqlite.DB, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(cmd.Context()); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
