package campaign

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/models"
	"github.com/wablast/wablast/internal/spreadsheet"
	"github.com/wablast/wablast/internal/whatsapp"
)

// scriptedSender fails at a fixed zero-based call index.
type scriptedSender struct {
	failAt int // -1 never fails
	calls  []string
}

func (s *scriptedSender) Send(_ context.Context, phone, _ string) error {
	if s.failAt >= 0 && len(s.calls) == s.failAt {
		return fmt.Errorf("provider error for %s", phone)
	}
	s.calls = append(s.calls, phone)
	return nil
}

type loginChecker struct {
	err error
}

func (c loginChecker) CheckLogin(context.Context) error {
	return c.err
}

func testTable(n int) *spreadsheet.Table {
	records := make([]message.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, message.Record{
			"numero": fmt.Sprintf("+54911%07d", i),
			"nombre": fmt.Sprintf("persona-%d", i),
		})
	}
	return spreadsheet.New([]string{"numero", "nombre"}, records)
}

func TestRunner_SendsAllRecipients(t *testing.T) {
	sender := &scriptedSender{failAt: -1}
	runner := NewRunner(sender, loginChecker{})

	result, err := runner.Run(context.Background(), testTable(4), "Hola {nombre}")
	require.NoError(t, err)
	require.Equal(t, 4, result.Sent)
	require.Equal(t, 4, result.Total)
	require.Len(t, sender.calls, 4)
}

func TestRunner_FailFastReportsSentCount(t *testing.T) {
	// Recipient at index 2 (the third) fails: exactly 2 sent, none after.
	sender := &scriptedSender{failAt: 2}
	runner := NewRunner(sender, loginChecker{})

	result, err := runner.Run(context.Background(), testTable(5), "Hola {nombre}")

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, 2, sendErr.Row)
	require.Equal(t, 2, result.Sent)
	require.Len(t, sender.calls, 2, "recipients after the failure must not be attempted")
}

func TestRunner_NotLoggedInAbortsBeforeAnySend(t *testing.T) {
	sender := &scriptedSender{failAt: -1}
	runner := NewRunner(sender, loginChecker{err: whatsapp.ErrNotLoggedIn})

	result, err := runner.Run(context.Background(), testTable(3), "Hola {nombre}")
	require.ErrorIs(t, err, whatsapp.ErrNotLoggedIn)
	require.Equal(t, 0, result.Sent)
	require.Empty(t, sender.calls)
}

func TestRunner_FormattingFailureAbortsBeforeAnySend(t *testing.T) {
	sender := &scriptedSender{failAt: -1}
	runner := NewRunner(sender, loginChecker{})

	_, err := runner.Run(context.Background(), testTable(3), "Hola {apellido}")

	var fieldErr *message.FieldNotFoundError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "apellido", fieldErr.Field)
	require.Empty(t, sender.calls)
}

func TestRunner_EmptyTable(t *testing.T) {
	runner := NewRunner(&scriptedSender{failAt: -1}, loginChecker{})

	_, err := runner.Run(context.Background(), testTable(0), "Hola")
	require.ErrorIs(t, err, message.ErrEmptyTable)

	_, err = runner.Run(context.Background(), nil, "Hola")
	require.ErrorIs(t, err, message.ErrEmptyTable)
}

func TestRunner_EmptyTemplate(t *testing.T) {
	runner := NewRunner(&scriptedSender{failAt: -1}, loginChecker{})

	_, err := runner.Run(context.Background(), testTable(2), "")
	require.ErrorIs(t, err, message.ErrEmptyTemplate)
}

func TestRunner_LedgerRecordsOutcomes(t *testing.T) {
	database, err := db.OpenInMemory()
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.Migrate(context.Background()))

	ledger := db.NewEventRepository(database)
	sender := &scriptedSender{failAt: 1}
	runner := NewRunner(sender, loginChecker{}, WithLedger(ledger))

	result, runErr := runner.Run(context.Background(), testTable(3), "Hola {nombre}")
	require.Error(t, runErr)

	events, err := ledger.ListByEntity(context.Background(), models.EntityTypeBatch, result.BatchID, 10)
	require.NoError(t, err)

	types := make([]models.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	require.Contains(t, types, models.EventTypeBatchStarted)
	require.Contains(t, types, models.EventTypeMessageSent)
	require.Contains(t, types, models.EventTypeMessageFailed)
	require.Contains(t, types, models.EventTypeBatchAborted)
	require.NotContains(t, types, models.EventTypeBatchCompleted)
}

func TestFormatAll_TableOrder(t *testing.T) {
	formatted, err := FormatAll(testTable(3), "Hola {nombre}")
	require.NoError(t, err)
	require.Equal(t, []string{"Hola persona-0", "Hola persona-1", "Hola persona-2"}, formatted)
}

func TestSendError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SendError{Phone: "+549", Row: 1, Err: cause}
	require.ErrorIs(t, err, cause)
}

func TestRunner_MissingPhoneColumn(t *testing.T) {
	sender := &scriptedSender{failAt: -1}
	runner := NewRunner(sender, loginChecker{})

	table := spreadsheet.New([]string{"nombre"}, []message.Record{
		{"nombre": "Ana"},
		{"nombre": "Luis"},
	})

	_, err := runner.Run(context.Background(), table, "Hola {nombre}")
	require.ErrorIs(t, err, spreadsheet.ErrMissingPhoneColumn)
	require.Empty(t, sender.calls, "no message may go out without a phone column")
}

type failingLedger struct{}

func (failingLedger) Append(context.Context, *models.Event) error {
	return errors.New("ledger unavailable")
}

func TestRunner_LedgerFailureDoesNotBreakBatch(t *testing.T) {
	sender := &scriptedSender{failAt: -1}
	runner := NewRunner(sender, loginChecker{}, WithLedger(failingLedger{}))

	result, err := runner.Run(context.Background(), testTable(3), "Hola {nombre}")
	require.NoError(t, err)
	require.Equal(t, 3, result.Sent)
}
