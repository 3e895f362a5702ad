package campaign

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wablast/wablast/internal/events"
	"github.com/wablast/wablast/internal/logging"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/spreadsheet"
	"github.com/wablast/wablast/internal/whatsapp"
)

// SendError reports the recipient that broke a batch.
type SendError struct {
	// Phone is the failing recipient's number.
	Phone string

	// Row is the zero-based table row of the failing recipient.
	Row int

	// Err is the underlying send failure.
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send to %s (row %d) failed: %v", e.Phone, e.Row, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Result summarizes a batch run.
type Result struct {
	// BatchID identifies the run in the send ledger.
	BatchID string

	// Total is the number of recipients in the table.
	Total int

	// Sent is how many messages were dispatched before the run ended.
	Sent int
}

// Runner executes the batch send loop: format every row, check the login
// session once, then send strictly sequentially in table order. The loop is
// fail-fast; the first send failure aborts the remainder of the batch.
type Runner struct {
	sender  whatsapp.Sender
	checker whatsapp.Checker
	ledger  events.Ledger
	logger  zerolog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLedger records batch and per-recipient outcomes in the send ledger.
func WithLedger(ledger events.Ledger) RunnerOption {
	return func(r *Runner) {
		r.ledger = ledger
	}
}

// NewRunner creates a batch runner.
func NewRunner(sender whatsapp.Sender, checker whatsapp.Checker, opts ...RunnerOption) *Runner {
	runner := &Runner{
		sender:  sender,
		checker: checker,
		logger:  logging.Component("campaign"),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// FormatAll formats the template for every table row, in table order. Any
// formatting failure aborts before a single message is sent.
func FormatAll(table *spreadsheet.Table, template string) ([]string, error) {
	if table == nil || table.Len() == 0 {
		return nil, message.ErrEmptyTable
	}

	formatted := make([]string, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		text, err := message.Format(template, table.Row(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		formatted = append(formatted, text)
	}
	return formatted, nil
}

// Run sends the formatted template to every recipient in the table.
//
// On the first send failure the remaining recipients are not attempted; the
// returned Result still reports how many messages went out. Already-sent
// messages cannot be recalled, so there is no rollback.
func (r *Runner) Run(ctx context.Context, table *spreadsheet.Table, template string) (*Result, error) {
	formatted, err := FormatAll(table, template)
	if err != nil {
		return nil, err
	}

	// Load enforces the phone column, but programmatically built tables may
	// lack it; sending to an empty number must not happen.
	if !table.HasColumn(spreadsheet.PhoneColumn) {
		return nil, spreadsheet.ErrMissingPhoneColumn
	}

	result := &Result{
		BatchID: uuid.New().String(),
		Total:   table.Len(),
	}

	if err := r.checker.CheckLogin(ctx); err != nil {
		if errors.Is(err, whatsapp.ErrNotLoggedIn) {
			r.logger.Warn().Msg("not logged in, batch aborted")
			r.record(func() error { return events.LoginRequired(ctx, r.ledger, result.BatchID) })
		}
		return result, err
	}

	r.logger.Info().
		Str("batch_id", result.BatchID).
		Int("recipients", result.Total).
		Msg("starting batch send")
	r.record(func() error { return events.BatchStarted(ctx, r.ledger, result.BatchID, template, result.Total) })

	for i := 0; i < table.Len(); i++ {
		phone := table.Row(i)[spreadsheet.PhoneColumn]

		if err := r.sender.Send(ctx, phone, formatted[i]); err != nil {
			r.logger.Error().Err(err).Str("phone", phone).Int("row", i).Msg("send failed, aborting batch")
			cause := err
			r.record(func() error { return events.MessageFailed(ctx, r.ledger, result.BatchID, phone, i, cause) })
			r.record(func() error { return events.BatchAborted(ctx, r.ledger, result.BatchID, result.Sent, result.Total, cause) })
			return result, &SendError{Phone: phone, Row: i, Err: err}
		}

		result.Sent++
		r.logger.Info().Str("phone", phone).Int("row", i).Msg("message sent")
		r.record(func() error { return events.MessageSent(ctx, r.ledger, result.BatchID, phone, i) })
	}

	r.logger.Info().
		Str("batch_id", result.BatchID).
		Int("sent", result.Sent).
		Msg("batch completed")
	r.record(func() error { return events.BatchCompleted(ctx, r.ledger, result.BatchID, result.Sent, result.Total) })

	return result, nil
}

// record runs a ledger append only when a ledger is configured. Append
// failures are logged, never allowed to break the batch.
func (r *Runner) record(write func() error) {
	if r.ledger == nil {
		return
	}
	if err := write(); err != nil {
		r.logger.Warn().Err(err).Msg("failed to append ledger event")
	}
}
