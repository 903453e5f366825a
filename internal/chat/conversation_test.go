package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"botdeck/internal/domain"
)

// scriptedTransport returns queued outcomes in order; a nil entry succeeds.
type scriptedTransport struct {
	mu       sync.Mutex
	outcomes []error
	calls    int
	contents []string
	release  chan struct{} // when set, calls block until it closes
}

func (t *scriptedTransport) Deliver(ctx context.Context, content string) error {
	t.mu.Lock()
	idx := t.calls
	t.calls++
	t.contents = append(t.contents, content)
	release := t.release
	t.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < len(t.outcomes) {
		return t.outcomes[idx]
	}
	return nil
}

type fixedReply struct{ text string }

func (r fixedReply) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	return r.text, nil
}

func noTypingDelay() ConversationOption {
	return WithTypingDelay(func() time.Duration { return 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func findByContent(msgs []domain.ChatMessage, content string) (domain.ChatMessage, bool) {
	for _, m := range msgs {
		if m.Content == content {
			return m, true
		}
	}
	return domain.ChatMessage{}, false
}

func TestConversationSeedsGreeting(t *testing.T) {
	c := NewConversation(&scriptedTransport{}, nil, noTypingDelay())
	msgs := c.Snapshot()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 greeting messages, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.Sender != domain.SenderSupport || m.Status != domain.MessageSent {
			t.Fatalf("unexpected greeting message: %+v", m)
		}
	}
}

func TestSendInsertsOptimisticallyThenSucceeds(t *testing.T) {
	c := NewConversation(&scriptedTransport{release: make(chan struct{})}, nil, noTypingDelay())
	transport := c.transport.(*scriptedTransport)

	tempID, err := c.Send(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !strings.HasPrefix(tempID, "temp-") {
		t.Fatalf("unexpected temp id %q", tempID)
	}

	// Before delivery resolves, the message is visible and sending.
	msg, ok := findByContent(c.Snapshot(), "hello")
	if !ok {
		t.Fatal("optimistic message missing")
	}
	if msg.Status != domain.MessageSending || msg.ID != tempID || msg.TempID != tempID {
		t.Fatalf("unexpected optimistic message: %+v", msg)
	}

	close(transport.release)
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageSent
	})

	msg, _ = findByContent(c.Snapshot(), "hello")
	if !strings.HasPrefix(msg.ID, "msg-") {
		t.Fatalf("expected final id, got %q", msg.ID)
	}
	if msg.TempID != "" {
		t.Fatal("temp id should clear on success")
	}
}

func TestFailedSendKeepsMessageWithTempID(t *testing.T) {
	c := NewConversation(&scriptedTransport{outcomes: []error{ErrNetwork}}, nil, noTypingDelay())

	tempID, err := c.Send(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageFailed
	})

	msg, _ := findByContent(c.Snapshot(), "hello")
	if msg.TempID != tempID || msg.ID != tempID {
		t.Fatalf("failed message lost its identity: %+v", msg)
	}
	if msg.Content != "hello" {
		t.Fatal("failed message lost its content")
	}

	failed, ok := c.LastFailed()
	if !ok || failed.TempID != tempID {
		t.Fatal("LastFailed should surface the failed message")
	}
}

func TestRetryReusesIdentityAndNeverDuplicates(t *testing.T) {
	transport := &scriptedTransport{outcomes: []error{ErrNetwork, nil}}
	c := NewConversation(transport, nil, noTypingDelay())

	tempID, _ := c.Send(context.Background(), "hello", "")
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageFailed
	})
	countAfterFail := len(c.Snapshot())

	retryID, err := c.Send(context.Background(), "", tempID)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if retryID != tempID {
		t.Fatalf("retry changed the unit of work: %q vs %q", retryID, tempID)
	}

	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageSent
	})

	if len(c.Snapshot()) != countAfterFail {
		t.Fatalf("retry duplicated the message: %d vs %d", len(c.Snapshot()), countAfterFail)
	}

	transport.mu.Lock()
	defer transport.mu.Unlock()
	if len(transport.contents) != 2 || transport.contents[1] != "hello" {
		t.Fatalf("retry must resend the original content: %v", transport.contents)
	}
}

func TestRetryWhileInFlightIsRejected(t *testing.T) {
	transport := &scriptedTransport{release: make(chan struct{})}
	c := NewConversation(transport, nil, noTypingDelay())

	tempID, _ := c.Send(context.Background(), "hello", "")

	if _, err := c.Send(context.Background(), "", tempID); !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}

	close(transport.release)
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageSent
	})
}

func TestRetryUnknownTempIDIsRejected(t *testing.T) {
	c := NewConversation(&scriptedTransport{}, nil, noTypingDelay())
	if _, err := c.Send(context.Background(), "", "temp-nope"); !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("expected ErrUnknownMessage, got %v", err)
	}
}

func TestSuccessfulSendTriggersCounterpartyReply(t *testing.T) {
	c := NewConversation(&scriptedTransport{}, fixedReply{text: "happy to help"}, noTypingDelay())

	c.Send(context.Background(), "hello", "")

	waitFor(t, func() bool {
		_, ok := findByContent(c.Snapshot(), "happy to help")
		return ok
	})

	reply, _ := findByContent(c.Snapshot(), "happy to help")
	if reply.Sender != domain.SenderSupport || reply.Status != domain.MessageSent {
		t.Fatalf("unexpected reply message: %+v", reply)
	}
	if reply.TempID != "" {
		t.Fatal("a reply is not a retryable unit of work")
	}
	if c.Typing() {
		t.Fatal("typing indicator should clear after the reply")
	}
}

func TestFailedSendDoesNotTriggerReply(t *testing.T) {
	c := NewConversation(&scriptedTransport{outcomes: []error{ErrNetwork}}, fixedReply{text: "should not appear"}, noTypingDelay())

	c.Send(context.Background(), "hello", "")
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "hello")
		return m.Status == domain.MessageFailed
	})

	// Give a straggler reply a chance to land, then check it didn't.
	time.Sleep(20 * time.Millisecond)
	if _, ok := findByContent(c.Snapshot(), "should not appear"); ok {
		t.Fatal("failed send must not produce a counterparty reply")
	}
}

func TestMessagesStayOrderedAcrossRetries(t *testing.T) {
	transport := &scriptedTransport{outcomes: []error{ErrNetwork, nil, nil}}
	c := NewConversation(transport, nil, noTypingDelay())

	firstID, _ := c.Send(context.Background(), "first", "")
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "first")
		return m.Status == domain.MessageFailed
	})

	c.Send(context.Background(), "second", "")
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "second")
		return m.Status == domain.MessageSent
	})

	c.Send(context.Background(), "", firstID)
	waitFor(t, func() bool {
		m, _ := findByContent(c.Snapshot(), "first")
		return m.Status == domain.MessageSent
	})

	// The retried message keeps its original position before "second".
	msgs := c.Snapshot()
	var firstIdx, secondIdx int
	for i, m := range msgs {
		switch m.Content {
		case "first":
			firstIdx = i
		case "second":
			secondIdx = i
		}
	}
	if firstIdx >= secondIdx {
		t.Fatalf("retry reordered messages: first at %d, second at %d", firstIdx, secondIdx)
	}
}
