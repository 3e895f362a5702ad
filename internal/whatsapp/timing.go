package whatsapp

import "time"

// Timing groups the wall-clock waits used while driving WhatsApp Web.
// The defaults match observed page behavior; tests inject near-zero values
// so no automation code path ever sleeps for real in CI.
type Timing struct {
	// PageLoad is the wait after navigating to a chat URL.
	PageLoad time.Duration

	// UISettle is the wait after the page reports ready, before typing.
	UISettle time.Duration

	// PasteDelay is the wait between clipboard write and paste.
	PasteDelay time.Duration

	// ConfirmPoll is the interval between sent-checkmark checks.
	ConfirmPoll time.Duration

	// ConfirmTimeout is the maximum wait for the sent checkmark.
	ConfirmTimeout time.Duration
}

// DefaultTiming returns the production timing profile.
func DefaultTiming() Timing {
	return Timing{
		PageLoad:       3 * time.Second,
		UISettle:       time.Second,
		PasteDelay:     500 * time.Millisecond,
		ConfirmPoll:    time.Second,
		ConfirmTimeout: 20 * time.Second,
	}
}

// Retry configures the per-message retry policy.
type Retry struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetry returns the default retry policy.
func DefaultRetry() Retry {
	return Retry{
		MaxRetries:        2,
		InitialDelay:      2 * time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}
