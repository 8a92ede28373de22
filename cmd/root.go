// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mbaylis/pomo-cli/internal/adapters/git"
	"github.com/mbaylis/pomo-cli/internal/adapters/notification"
	"github.com/mbaylis/pomo-cli/internal/adapters/storage"
	"github.com/mbaylis/pomo-cli/internal/adapters/tui"
	"github.com/mbaylis/pomo-cli/internal/config"
	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
	"github.com/mbaylis/pomo-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath string
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	ctx      context.Context
	storage  ports.Storage
	tracker  *services.TrackerService
	notifier *notification.Notifier
	config   *config.Config
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - a drift-free Pomodoro timer with daily goals",
	Long: `pomo is a command-line Pomodoro timer that derives remaining time
from wall-clock timestamps, so it stays accurate even when the terminal
is suspended or the machine sleeps. Focus time accumulates into a
per-day ledger with a configurable daily goal.

Run "pomo" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(app.ctx, app.tracker, &app.config.Theme)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.pomo/pomo.db)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	app.ctx = context.Background()

	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	app.notifier = notification.New(&app.config.Notifications)

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	app.tracker = services.NewTrackerService(
		app.ctx,
		domain.SystemClock{},
		app.storage,
		config.NewSettingsStore(),
		app.notifier,
		git.NewDetector(),
		workingDir,
	)

	return nil
}

// cleanupServices releases resources held by the services.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}
