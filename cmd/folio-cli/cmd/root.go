package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"folio/internal/adapters/storage"
	"folio/internal/application"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/ports"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
	store   *storage.Handle
)

var rootCmd = &cobra.Command{
	Use:   "folio-cli",
	Short: "CLI for managing a portfolio data file",
	Long: `folio-cli is a command-line interface for the portfolio content
dashboard.

It imports and exports data.js documents, edits categories, tags,
timeline events and project sections, and builds the static site.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger = logging.New(os.Stderr, cfg.LogLevel)
		store, err = storage.Open(cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, application.ErrConfirmationRequired) {
			fmt.Fprintf(os.Stderr, "%v (re-run with --yes)\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./folio.yaml)")
}

// GetRepo returns the initialized repository
func GetRepo() ports.PortfolioRepository {
	return store.Repo
}

// GetRevisions returns the revision log, or an error when the configured
// store keeps no history
func GetRevisions() (ports.RevisionLog, error) {
	if store.Revisions == nil {
		return nil, fmt.Errorf("store %q keeps no revisions", cfg.Store)
	}
	return store.Revisions, nil
}

// GetConfig returns the loaded configuration
func GetConfig() config.Config {
	return cfg
}

// addConfirmFlag registers --yes on a destructive command
func addConfirmFlag(c *cobra.Command, target *bool) {
	c.Flags().BoolVarP(target, "yes", "y", false, "confirm without prompting")
}
