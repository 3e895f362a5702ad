package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/campaign"
	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/tui"
	"github.com/wablast/wablast/internal/whatsapp"
)

var (
	uiFile   string
	uiDryRun bool
)

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().StringVar(&uiFile, "file", "", "spreadsheet to load on startup")
	uiCmd.Flags().BoolVar(&uiDryRun, "dry-run", false, "send batches to a no-op transport")
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive interface",
	Long: "Open the terminal interface for managing templates, loading recipients,\n" +
		"previewing and sending batches.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		session := campaign.NewSession(db.NewTemplateRepository(database))

		return tui.Run(cmd.Context(), tui.Options{
			Session:      session,
			Ledger:       db.NewEventRepository(database),
			NewTransport: newTransport,
			InitialFile:  uiFile,
		})
	},
}

func newTransport(ctx context.Context) (tui.Transport, func(), error) {
	if uiDryRun {
		return &whatsapp.DryRunSender{}, func() {}, nil
	}

	client := whatsapp.NewClient(browserOptions())
	if err := client.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}
