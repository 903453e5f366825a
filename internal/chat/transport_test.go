package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockTransportAlwaysFails(t *testing.T) {
	tr := NewMockTransport(1.0, 0, 0, 42)
	for i := 0; i < 5; i++ {
		if err := tr.Deliver(context.Background(), "x"); !errors.Is(err, ErrNetwork) {
			t.Fatalf("expected ErrNetwork, got %v", err)
		}
	}
}

func TestMockTransportNeverFails(t *testing.T) {
	tr := NewMockTransport(0, 0, 0, 42)
	for i := 0; i < 5; i++ {
		if err := tr.Deliver(context.Background(), "x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestMockTransportHonorsContext(t *testing.T) {
	tr := NewMockTransport(0, time.Second, 2*time.Second, 42)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tr.Deliver(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
