// Package advisor produces support-agent replies for the chat screen,
// either from the OpenAI API or from a canned rotation when no key is set.
package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"botdeck/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a friendly support agent for a trading bot " +
	"admin dashboard. Answer questions about signals, trades, broker " +
	"accounts, and platform features. Keep replies short and practical."

var cannedReplies = []string{
	"Thanks for reaching out! I'm reviewing your message and will get back to you shortly.",
	"Great question! Let me look into that for you.",
	"I understand your concern. Our team is here to help!",
	"That's a common question. Here's what you need to know...",
	"Thanks for your patience! I'm checking our resources for the best answer.",
	"I appreciate you bringing this to our attention. Let me investigate.",
	"Good news! I have some helpful information for you.",
	"I'm here to assist you with that. Let me explain...",
}

// Canned cycles through stock support replies.
type Canned struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCanned creates the stock reply source.
func NewCanned(seed int64) *Canned {
	return &Canned{rng: rand.New(rand.NewSource(seed))}
}

func (c *Canned) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cannedReplies[c.rng.Intn(len(cannedReplies))], nil
}

// OpenAI answers from the chat completion API, feeding it the recent
// conversation history.
type OpenAI struct {
	client     openai.Client
	model      string
	maxHistory int
}

// NewOpenAI creates the LLM-backed reply source.
func NewOpenAI(apiKey, model string, maxHistory int) *OpenAI {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &OpenAI{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:      model,
		maxHistory: maxHistory,
	}
}

func (o *OpenAI) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}

	start := 0
	if len(history) > o.maxHistory {
		start = len(history) - o.maxHistory
	}
	for _, m := range history[start:] {
		if m.Status != domain.MessageSent {
			continue
		}
		switch m.Sender {
		case domain.SenderUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case domain.SenderSupport:
			messages = append(messages, openai.AssistantMessage(m.Content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
