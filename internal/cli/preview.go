package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/spreadsheet"
)

var (
	previewFile     string
	previewTemplate string
	previewMessage  string
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewFile, "file", "", "recipient spreadsheet (.xlsx or .csv)")
	previewCmd.Flags().StringVar(&previewTemplate, "template", "", "stored template name")
	previewCmd.Flags().StringVar(&previewMessage, "message", "", "message text (instead of a stored template)")
	_ = previewCmd.MarkFlagRequired("file")
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the template for the first recipient",
	Long: "Format the template with the first spreadsheet row and print the result\n" +
		"without sending anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		template, err := resolveTemplate(cmd, database, previewTemplate, previewMessage)
		if err != nil {
			return err
		}

		table, err := spreadsheet.Load(previewFile)
		if err != nil {
			return err
		}

		rendered, err := message.FormatPreview(template, table)
		if err != nil {
			return reportBatchError(nil, err)
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]string{"preview": rendered})
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}
