// Package whatsapp drives a WhatsApp Web browser tab to dispatch messages.
package whatsapp

import (
	"context"
	"errors"
)

// Session and send errors.
var (
	// ErrNotLoggedIn indicates no authenticated WhatsApp Web session exists.
	ErrNotLoggedIn = errors.New("not logged in at WhatsApp Web")

	// ErrBrowserNotStarted indicates Send was called before Initialize.
	ErrBrowserNotStarted = errors.New("browser session not started")
)

// Sender dispatches a single message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Checker reports whether an authenticated WhatsApp Web session exists.
// Returns ErrNotLoggedIn when the user must scan the QR code first.
type Checker interface {
	CheckLogin(ctx context.Context) error
}

// DryRunSender logs what would be sent without driving a browser.
type DryRunSender struct {
	// Sent collects the (phone, message) pairs in dispatch order.
	Sent []SentMessage
}

// SentMessage records one dry-run dispatch.
type SentMessage struct {
	Phone   string
	Message string
}

// Send records the dispatch and returns nil.
func (s *DryRunSender) Send(_ context.Context, phone, message string) error {
	s.Sent = append(s.Sent, SentMessage{Phone: phone, Message: message})
	return nil
}

// CheckLogin always succeeds for dry runs.
func (s *DryRunSender) CheckLogin(_ context.Context) error {
	return nil
}
