package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/campaign"
	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/spreadsheet"
	"github.com/wablast/wablast/internal/whatsapp"
)

var (
	sendFile     string
	sendTemplate string
	sendMessage  string
	sendDryRun   bool
)

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendFile, "file", "", "recipient spreadsheet (.xlsx or .csv)")
	sendCmd.Flags().StringVar(&sendTemplate, "template", "", "stored template name")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "message text (instead of a stored template)")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "format everything but do not drive the browser")
	_ = sendCmd.MarkFlagRequired("file")
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the message to every recipient",
	Long: "Format the template for every spreadsheet row and send the messages in\n" +
		"order through WhatsApp Web. The batch stops at the first failure.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		template, err := resolveTemplate(cmd, database, sendTemplate, sendMessage)
		if err != nil {
			return err
		}

		table, err := spreadsheet.Load(sendFile)
		if err != nil {
			return err
		}

		var sender interface {
			whatsapp.Sender
			whatsapp.Checker
		}
		if sendDryRun {
			sender = &whatsapp.DryRunSender{}
		} else {
			client := whatsapp.NewClient(browserOptions())
			if err := client.Initialize(cmd.Context()); err != nil {
				return err
			}
			defer client.Close()
			sender = client
		}

		runner := campaign.NewRunner(sender, sender,
			campaign.WithLedger(db.NewEventRepository(database)))

		result, runErr := runner.Run(cmd.Context(), table, template)
		if runErr != nil {
			return reportBatchError(result, runErr)
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, result)
		}
		fmt.Fprintf(os.Stdout, "Messages sent successfully. [%d]\n", result.Sent)
		return nil
	},
}

// browserOptions maps the app config onto browser session options.
func browserOptions() whatsapp.Options {
	opts := whatsapp.DefaultOptions()
	opts.ChromePath = cfg.Browser.ChromePath
	opts.UserDataDir = cfg.Browser.UserDataDir
	opts.Headless = cfg.Browser.Headless
	opts.QRTimeout = cfg.Browser.QRTimeout()
	opts.Retry = whatsapp.Retry{
		MaxRetries:        cfg.Send.MaxRetries,
		InitialDelay:      secondsDuration(cfg.Send.InitialDelaySeconds),
		MaxDelay:          secondsDuration(cfg.Send.MaxDelaySeconds),
		BackoffMultiplier: cfg.Send.BackoffMultiplier,
	}
	opts.Pacer = whatsapp.NewPacer(whatsapp.PacerConfig{
		MessagesPerSecond: float64(cfg.Send.MessagesPerMinute) / 60.0,
		BurstSize:         cfg.Send.BurstSize,
	})
	return opts
}

// resolveTemplate returns the message text to format: either the named
// stored template or the literal --message value.
func resolveTemplate(cmd *cobra.Command, database *db.DB, name, literal string) (string, error) {
	switch {
	case name != "" && literal != "":
		return "", fmt.Errorf("--template and --message are mutually exclusive")
	case name != "":
		tmpl, err := db.NewTemplateRepository(database).GetByName(cmd.Context(), name)
		if err != nil {
			return "", err
		}
		return tmpl.Content, nil
	case literal != "":
		return literal, nil
	default:
		return "", fmt.Errorf("pass --template <name> or --message <text>")
	}
}

// reportBatchError turns formatting and transport failures into the
// user-facing messages rendered at the handler boundary.
func reportBatchError(result *campaign.Result, err error) error {
	var fieldErr *message.FieldNotFoundError
	var sendErr *campaign.SendError

	switch {
	case errors.Is(err, message.ErrEmptyTemplate):
		return fmt.Errorf("the template is empty, write a message first")
	case errors.Is(err, message.ErrEmptyTable):
		return fmt.Errorf("no recipients loaded, upload a spreadsheet first")
	case errors.As(err, &fieldErr):
		return fmt.Errorf("unknown placeholder field %q: add the column to the spreadsheet or fix the template", fieldErr.Field)
	case errors.Is(err, whatsapp.ErrNotLoggedIn):
		return fmt.Errorf("not logged in: open https://web.whatsapp.com and scan the QR code, then retry")
	case errors.As(err, &sendErr):
		return fmt.Errorf("error with message to %s; %d of %d sent before aborting",
			sendErr.Phone, result.Sent, result.Total)
	default:
		return err
	}
}

func secondsDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
