package chat

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrNetwork is the simulated delivery failure.
var ErrNetwork = errors.New("network error")

// MockTransport simulates message delivery with latency and a fixed failure
// probability, the only way a send resolves negatively.
type MockTransport struct {
	failureRate float64
	minLatency  time.Duration
	maxLatency  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockTransport creates a transport failing with probability failureRate
// after a latency drawn uniformly from [minLatency, maxLatency].
func NewMockTransport(failureRate float64, minLatency, maxLatency time.Duration, seed int64) *MockTransport {
	return &MockTransport{
		failureRate: failureRate,
		minLatency:  minLatency,
		maxLatency:  maxLatency,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (t *MockTransport) Deliver(ctx context.Context, content string) error {
	t.mu.Lock()
	var wait time.Duration
	if t.maxLatency > t.minLatency {
		wait = t.minLatency + time.Duration(t.rng.Int63n(int64(t.maxLatency-t.minLatency)))
	} else {
		wait = t.minLatency
	}
	fail := t.rng.Float64() < t.failureRate
	t.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	if fail {
		return ErrNetwork
	}
	return nil
}
