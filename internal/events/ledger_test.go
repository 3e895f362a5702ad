package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wablast/wablast/internal/models"
)

type fakeLedger struct {
	last *models.Event
}

func (l *fakeLedger) Append(ctx context.Context, event *models.Event) error {
	l.last = event
	return nil
}

func TestBatchStarted(t *testing.T) {
	ledger := &fakeLedger{}

	if err := BatchStarted(context.Background(), ledger, "batch-1", "Hola {nombre}", 3); err != nil {
		t.Fatalf("BatchStarted failed: %v", err)
	}

	if ledger.last == nil {
		t.Fatal("expected event to be appended")
	}
	if ledger.last.Type != models.EventTypeBatchStarted {
		t.Fatalf("unexpected event type: %q", ledger.last.Type)
	}
	if ledger.last.EntityID != "batch-1" {
		t.Fatalf("unexpected entity id: %q", ledger.last.EntityID)
	}

	var payload models.BatchStartedPayload
	if err := json.Unmarshal(ledger.last.Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Recipients != 3 {
		t.Fatalf("unexpected recipient count: %d", payload.Recipients)
	}
}

func TestMessageFailedCarriesCause(t *testing.T) {
	ledger := &fakeLedger{}

	err := MessageFailed(context.Background(), ledger, "batch-1", "+5491100000000", 2, errors.New("timeout"))
	if err != nil {
		t.Fatalf("MessageFailed failed: %v", err)
	}

	var payload models.MessageFailedPayload
	if err := json.Unmarshal(ledger.last.Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Error != "timeout" {
		t.Fatalf("unexpected error text: %q", payload.Error)
	}
	if payload.Row != 2 {
		t.Fatalf("unexpected row: %d", payload.Row)
	}
}

func TestAppendRequiresLedgerAndEntity(t *testing.T) {
	if err := LoginRequired(context.Background(), nil, "batch-1"); err == nil {
		t.Fatal("expected error for nil ledger")
	}
	if err := LoginRequired(context.Background(), &fakeLedger{}, ""); err == nil {
		t.Fatal("expected error for empty entity id")
	}
}
