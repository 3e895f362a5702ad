package whatsapp

import (
	"context"
	"sync"
	"time"
)

// PacerConfig defines the sustainable send rate.
type PacerConfig struct {
	// MessagesPerSecond is the sustainable rate (tokens added per second).
	MessagesPerSecond float64

	// BurstSize is the maximum number of sends allowed in a burst.
	BurstSize int
}

// Pacer implements the token bucket algorithm to space out sends so the
// automated session does not look like a flood to WhatsApp.
type Pacer struct {
	mu         sync.Mutex
	tokens     float64
	lastUpdate time.Time
	ratePerSec float64
	maxTokens  float64
}

// NewPacer creates a pacer with the given configuration. A zero or negative
// rate disables pacing (Allow always succeeds).
func NewPacer(cfg PacerConfig) *Pacer {
	if cfg.MessagesPerSecond <= 0 {
		return nil
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &Pacer{
		tokens:     float64(cfg.BurstSize),
		lastUpdate: time.Now(),
		ratePerSec: cfg.MessagesPerSecond,
		maxTokens:  float64(cfg.BurstSize),
	}
}

// Allow checks if a send is allowed now and consumes a token if so.
func (p *Pacer) Allow() bool {
	if p == nil {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.refill(time.Now())
	if p.tokens >= 1.0 {
		p.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}

	for {
		p.mu.Lock()
		p.refill(time.Now())
		if p.tokens >= 1.0 {
			p.tokens--
			p.mu.Unlock()
			return nil
		}
		deficit := 1.0 - p.tokens
		p.mu.Unlock()

		wait := time.Duration(deficit / p.ratePerSec * float64(time.Second))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill adds tokens based on elapsed time. Caller holds the lock.
func (p *Pacer) refill(now time.Time) {
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.tokens += elapsed * p.ratePerSec
	if p.tokens > p.maxTokens {
		p.tokens = p.maxTokens
	}
	p.lastUpdate = now
}
