package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/spreadsheet"
)

var sampleOut string

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "sample.xlsx", "output path")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample recipient spreadsheet",
	Long: "Write an example spreadsheet with the required numero column and a couple\n" +
		"of extra fields, to use as a starting point.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := spreadsheet.WriteSample(sampleOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Sample spreadsheet written to %s\n", sampleOut)
		return nil
	},
}
