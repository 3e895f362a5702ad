package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/models"
)

var (
	historyType  string
	historyBatch string
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyType, "type", "", "filter by event type (e.g. message.sent)")
	historyCmd.Flags().StringVar(&historyBatch, "batch", "", "show events of one batch, in order")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "max events to show")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the send ledger",
	Long:  "Show recorded batch and message events, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewEventRepository(database)

		var events []*models.Event
		if historyBatch != "" {
			events, err = repo.ListByEntity(cmd.Context(), models.EntityTypeBatch, historyBatch, historyLimit)
		} else {
			query := db.EventQuery{Limit: historyLimit}
			if historyType != "" {
				eventType := models.EventType(historyType)
				query.Type = &eventType
			}
			events, err = repo.Query(cmd.Context(), query)
		}
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, events)
		}

		rows := make([][]string, 0, len(events))
		for _, event := range events {
			rows = append(rows, []string{
				event.Timestamp.Local().Format(time.DateTime),
				string(event.Type),
				event.EntityID,
				string(event.Payload),
			})
		}
		return writeTable(os.Stdout, []string{"TIME", "TYPE", "ENTITY", "PAYLOAD"}, rows)
	},
}
