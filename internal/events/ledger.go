// Package events provides helper functions for recording send ledger
// entries.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wablast/wablast/internal/models"
)

// Ledger is the minimal interface needed to write events.
type Ledger interface {
	Append(ctx context.Context, event *models.Event) error
}

// BatchStarted records the start of a batch send.
func BatchStarted(ctx context.Context, ledger Ledger, batchID, template string, recipients int) error {
	return appendEvent(ctx, ledger, models.EventTypeBatchStarted, models.EntityTypeBatch, batchID,
		models.BatchStartedPayload{Template: template, Recipients: recipients})
}

// MessageSent records one successfully dispatched message.
func MessageSent(ctx context.Context, ledger Ledger, batchID, phone string, row int) error {
	return appendEvent(ctx, ledger, models.EventTypeMessageSent, models.EntityTypeBatch, batchID,
		models.MessageSentPayload{Phone: phone, Row: row})
}

// MessageFailed records the send failure that broke a batch.
func MessageFailed(ctx context.Context, ledger Ledger, batchID, phone string, row int, cause error) error {
	return appendEvent(ctx, ledger, models.EventTypeMessageFailed, models.EntityTypeBatch, batchID,
		models.MessageFailedPayload{Phone: phone, Row: row, Error: cause.Error()})
}

// BatchAborted records a batch that stopped before reaching every recipient.
func BatchAborted(ctx context.Context, ledger Ledger, batchID string, sent, total int, cause error) error {
	return appendEvent(ctx, ledger, models.EventTypeBatchAborted, models.EntityTypeBatch, batchID,
		models.BatchCompletedPayload{Sent: sent, Total: total, Error: cause.Error()})
}

// BatchCompleted records a batch that reached every recipient.
func BatchCompleted(ctx context.Context, ledger Ledger, batchID string, sent, total int) error {
	return appendEvent(ctx, ledger, models.EventTypeBatchCompleted, models.EntityTypeBatch, batchID,
		models.BatchCompletedPayload{Sent: sent, Total: total})
}

// LoginRequired records a batch aborted because WhatsApp Web had no session.
func LoginRequired(ctx context.Context, ledger Ledger, batchID string) error {
	return appendEvent(ctx, ledger, models.EventTypeLoginRequired, models.EntityTypeSession, batchID, nil)
}

func appendEvent(ctx context.Context, ledger Ledger, eventType models.EventType, entityType models.EntityType, entityID string, payload any) error {
	if ledger == nil {
		return fmt.Errorf("ledger is required")
	}
	if entityID == "" {
		return fmt.Errorf("entity id is required")
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Payload = data
	}

	return ledger.Append(ctx, event)
}
