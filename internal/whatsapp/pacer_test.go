package whatsapp

import (
	"context"
	"testing"
	"time"
)

func TestPacerAllow(t *testing.T) {
	pacer := NewPacer(PacerConfig{MessagesPerSecond: 10, BurstSize: 5})

	// Should allow first 5 sends (burst)
	for i := 0; i < 5; i++ {
		if !pacer.Allow() {
			t.Errorf("send %d should be allowed (within burst)", i)
		}
	}

	// 6th send should be denied (burst exhausted)
	if pacer.Allow() {
		t.Error("send 6 should be denied (burst exhausted)")
	}
}

func TestPacerRefill(t *testing.T) {
	pacer := NewPacer(PacerConfig{MessagesPerSecond: 100, BurstSize: 1})

	if !pacer.Allow() {
		t.Error("first send should be allowed")
	}
	if pacer.Allow() {
		t.Error("second send should be denied")
	}

	// At 100/sec, one token refills within 10ms.
	time.Sleep(15 * time.Millisecond)

	if !pacer.Allow() {
		t.Error("send after refill should be allowed")
	}
}

func TestPacerDisabled(t *testing.T) {
	pacer := NewPacer(PacerConfig{})

	for i := 0; i < 100; i++ {
		if !pacer.Allow() {
			t.Fatal("disabled pacer should always allow")
		}
	}
	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("disabled pacer Wait returned %v", err)
	}
}

func TestPacerWaitHonorsContext(t *testing.T) {
	pacer := NewPacer(PacerConfig{MessagesPerSecond: 0.001, BurstSize: 1})
	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait should not block: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pacer.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected context deadline, got %v", err)
	}
}
