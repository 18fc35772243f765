package copilot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/domain"
)

const chatFallbackReply = "Sorry, I'm having trouble connecting right now. Please try again in a moment."

// ChatSession is the product advisory conversation. One session exists per
// process; opening it for a product (including the one already targeted)
// resets the history and seeds a fresh greeting.
type ChatSession struct {
	orch *Orchestrator

	mu       sync.Mutex
	open     bool
	product  domain.Product
	history  []domain.ChatMessage
	inFlight bool
}

// NewChatSession constructs a closed session bound to the orchestrator's
// gateway, gate, and error handling.
func NewChatSession(orch *Orchestrator) *ChatSession {
	return &ChatSession{orch: orch}
}

// Open targets the session at a product, clearing any prior history and
// seeding exactly one greeting that references the product name.
func (s *ChatSession) Open(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.product = product
	s.inFlight = false
	s.history = []domain.ChatMessage{{
		Sender: domain.ChatSenderAI,
		Text:   fmt.Sprintf("Hi there! I'm the AI assistant for %q. How can I help you today?", product.Name),
	}}
}

// Send appends the user message and asks the provider for a reply. It reports
// false, without touching the provider or the history, when the input is
// blank, no session is open, a prior exchange is still in flight, or the gate
// is cooling. The user message is appended before the provider call; on
// failure the error goes to the central handler and a fixed fallback reply is
// appended so the conversation never ends on an unanswered message.
func (s *ChatSession) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if !s.open || s.inFlight || s.orch.gate.Cooling() {
		s.mu.Unlock()
		return false
	}
	s.history = append(s.history, domain.ChatMessage{Sender: domain.ChatSenderUser, Text: text})
	history := make([]domain.ChatMessage, len(s.history))
	copy(history, s.history)
	product := s.product
	s.inFlight = true
	s.mu.Unlock()

	reply, err := s.orch.gateway.ChatReply(ctx, product, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.orch.handleAIError(err)
		s.history = append(s.history, domain.ChatMessage{Sender: domain.ChatSenderAI, Text: chatFallbackReply})
		return true
	}
	s.history = append(s.history, domain.ChatMessage{Sender: domain.ChatSenderAI, Text: reply})
	return true
}

// Messages returns a copy of the visible history.
func (s *ChatSession) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Product returns the currently targeted product and whether the session is
// open.
func (s *ChatSession) Product() (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product, s.open
}
