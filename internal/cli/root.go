// Package cli implements the wablast command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/config"
	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/logging"
)

var (
	cfgFile    string
	jsonOutput bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wablast",
	Short: "Bulk WhatsApp Web sender",
	Long: "wablast sends WhatsApp Web messages to a list of recipients loaded from a\n" +
		"spreadsheet, using stored message templates with {field} placeholders.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return logging.Setup(cfg.Log.Level, cfg.Log.File)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/wablast/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openDatabase opens the configured database and applies migrations.
func openDatabase(cmd *cobra.Command) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cmd.Context()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
