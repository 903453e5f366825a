// Package chat tracks the support conversation as retryable units of work.
// Each outbound message carries a stable temporary id so a failed send can
// be resubmitted in place instead of re-queued.
package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"botdeck/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrSendInFlight rejects a retry while the same tempId is still sending.
	ErrSendInFlight = errors.New("message is already being sent")
	// ErrUnknownMessage rejects a retry for a tempId that was never sent.
	ErrUnknownMessage = errors.New("no message with that temp id")
)

// Transport delivers an outbound message to the (simulated) backend.
type Transport interface {
	Deliver(ctx context.Context, content string) error
}

// ReplySource produces the counterparty reply after a successful send.
type ReplySource interface {
	Reply(ctx context.Context, history []domain.ChatMessage) (string, error)
}

// Conversation owns the message sequence and the per-message status machine:
// sending -> sent on delivery, sending -> failed on error, and
// failed -> sending on a user retry that reuses the original tempId.
type Conversation struct {
	transport   Transport
	replies     ReplySource
	typingDelay func() time.Duration
	updates     chan struct{}

	mu       sync.Mutex
	messages []domain.ChatMessage
	inflight map[string]struct{}
	typing   bool
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithTypingDelay overrides the randomized counterparty typing delay.
func WithTypingDelay(fn func() time.Duration) ConversationOption {
	return func(c *Conversation) { c.typingDelay = fn }
}

// NewConversation creates a conversation pre-seeded with the support
// greeting, the way a freshly opened chat looks.
func NewConversation(transport Transport, replies ReplySource, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		transport: transport,
		replies:   replies,
		typingDelay: func() time.Duration {
			return 1500*time.Millisecond + time.Duration(time.Now().UnixNano()%2000)*time.Millisecond
		},
		updates:  make(chan struct{}, 1),
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	now := time.Now()
	c.messages = []domain.ChatMessage{
		{
			ID:      "msg-greeting-1",
			Content: "Hi there! Welcome to TradingBot support. How can I help you today?",
			Sender:  domain.SenderSupport, Status: domain.MessageSent,
			Timestamp: now.Add(-time.Minute),
		},
		{
			ID:      "msg-greeting-2",
			Content: "I'm happy to assist with any questions about trading, account setup, or platform features.",
			Sender:  domain.SenderSupport, Status: domain.MessageSent,
			Timestamp: now.Add(-55 * time.Second),
		},
	}
	return c
}

// Updates returns a coalescing channel that fires whenever the conversation
// changes. The owning view waits on it and re-reads Snapshot.
func (c *Conversation) Updates() <-chan struct{} {
	return c.updates
}

func (c *Conversation) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the message sequence.
func (c *Conversation) Snapshot() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Typing reports whether the counterparty typing indicator is active.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// LastFailed returns the most recent failed message, if any.
func (c *Conversation) LastFailed() (domain.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Status == domain.MessageFailed {
			return c.messages[i], true
		}
	}
	return domain.ChatMessage{}, false
}

// Send submits a message. With an empty tempID a new unit of work is created
// and a sending-status message is inserted at the end of the sequence before
// any delivery happens. With a tempID it is a retry: the existing failed
// message transitions back to sending in place, reusing its identity, and is
// never duplicated. Exactly one outcome (sent or failed) follows per call.
func (c *Conversation) Send(ctx context.Context, content, tempID string) (string, error) {
	c.mu.Lock()

	if tempID == "" {
		tempID = "temp-" + uuid.NewString()
		c.messages = append(c.messages, domain.ChatMessage{
			ID:        tempID,
			TempID:    tempID,
			Content:   content,
			Sender:    domain.SenderUser,
			Timestamp: time.Now(),
			Status:    domain.MessageSending,
		})
	} else {
		if _, busy := c.inflight[tempID]; busy {
			c.mu.Unlock()
			return "", ErrSendInFlight
		}
		idx := c.indexByTempID(tempID)
		if idx < 0 {
			c.mu.Unlock()
			return "", ErrUnknownMessage
		}
		c.messages[idx].Status = domain.MessageSending
		content = c.messages[idx].Content
	}

	c.inflight[tempID] = struct{}{}
	c.mu.Unlock()
	c.signal()

	go c.deliver(ctx, tempID, content)
	return tempID, nil
}

// indexByTempID must be called with the lock held.
func (c *Conversation) indexByTempID(tempID string) int {
	for i := range c.messages {
		if c.messages[i].TempID == tempID {
			return i
		}
	}
	return -1
}

func (c *Conversation) deliver(ctx context.Context, tempID, content string) {
	err := c.transport.Deliver(ctx, content)

	c.mu.Lock()
	delete(c.inflight, tempID)
	idx := c.indexByTempID(tempID)
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	if err != nil {
		// Content and tempId stay intact so a retry can reuse them.
		c.messages[idx].Status = domain.MessageFailed
		c.mu.Unlock()
		c.signal()
		return
	}

	c.messages[idx].ID = "msg-" + uuid.NewString()
	c.messages[idx].TempID = ""
	c.messages[idx].Status = domain.MessageSent
	c.typing = c.replies != nil
	c.mu.Unlock()
	c.signal()

	if c.replies != nil {
		c.reply(ctx)
	}
}

// reply produces the counterparty response after the typing delay. The reply
// is a fresh message with no tempId; it is not a unit of work and has no
// retry path.
func (c *Conversation) reply(ctx context.Context) {
	if d := c.typingDelay(); d > 0 {
		t := time.NewTimer(d)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			c.mu.Lock()
			c.typing = false
			c.mu.Unlock()
			c.signal()
			return
		}
	}

	text, err := c.replies.Reply(ctx, c.Snapshot())

	c.mu.Lock()
	c.typing = false
	if err != nil {
		log.Printf("support reply failed: %v", err)
	} else {
		c.messages = append(c.messages, domain.ChatMessage{
			ID:        "msg-" + uuid.NewString(),
			Content:   text,
			Sender:    domain.SenderSupport,
			Timestamp: time.Now(),
			Status:    domain.MessageSent,
		})
	}
	c.mu.Unlock()
	c.signal()
}
