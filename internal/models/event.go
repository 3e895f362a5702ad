package models

import (
	"encoding/json"
	"time"
)

// EventType categorizes entries in the send ledger.
type EventType string

const (
	// Batch events
	EventTypeBatchStarted   EventType = "batch.started"
	EventTypeBatchCompleted EventType = "batch.completed"
	EventTypeBatchAborted   EventType = "batch.aborted"

	// Per-recipient events
	EventTypeMessageSent   EventType = "message.sent"
	EventTypeMessageFailed EventType = "message.failed"

	// Session events
	EventTypeLoginRequired EventType = "login.required"
)

// EntityType identifies the kind of entity an event relates to.
type EntityType string

const (
	EntityTypeBatch     EntityType = "batch"
	EntityTypeRecipient EntityType = "recipient"
	EntityTypeSession   EntityType = "session"
)

// Event represents an append-only send ledger entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the batch ID or recipient phone the event relates to.
	EntityID string `json:"entity_id"`

	// Payload holds type-specific event data.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// BatchStartedPayload is the payload for batch.started events.
type BatchStartedPayload struct {
	Template   string `json:"template"`
	Recipients int    `json:"recipients"`
}

// MessageSentPayload is the payload for message.sent events.
type MessageSentPayload struct {
	Phone string `json:"phone"`
	Row   int    `json:"row"`
}

// MessageFailedPayload is the payload for message.failed events.
type MessageFailedPayload struct {
	Phone string `json:"phone"`
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchCompletedPayload is the payload for batch.completed and
// batch.aborted events.
type BatchCompletedPayload struct {
	Sent  int    `json:"sent"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}
