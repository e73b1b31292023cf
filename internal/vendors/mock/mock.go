// Package mock holds a scripted completer used in tests. It replays a fixed
// queue of replies and records every chat it receives.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

type Mock struct {
	// Replies are returned in order, one per Complete call.
	Replies []models.Message
	// SetupErr, when set, is returned from Setup.
	SetupErr error
	// CompleteErr, when set, is returned from every Complete call.
	CompleteErr error

	mu    sync.Mutex
	chats []models.Chat
	specs []models.Specification
	idx   int
}

func (m *Mock) Setup() error {
	return m.SetupErr
}

func (m *Mock) RegisterTool(spec models.Specification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specs = append(m.specs, spec)
}

func (m *Mock) Complete(ctx context.Context, chat models.Chat) (models.Message, error) {
	if err := ctx.Err(); err != nil {
		return models.Message{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, chat)
	if m.CompleteErr != nil {
		return models.Message{}, m.CompleteErr
	}
	if m.idx >= len(m.Replies) {
		return models.Message{}, fmt.Errorf("mock out of replies, call: %v", m.idx)
	}
	reply := m.Replies[m.idx]
	m.idx++
	return reply, nil
}

// Chats returns a copy of every chat seen so far.
func (m *Mock) Chats() []models.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Chat, len(m.chats))
	copy(out, m.chats)
	return out
}

// RegisteredTools returns the specifications registered on the mock.
func (m *Mock) RegisteredTools() []models.Specification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Specification, len(m.specs))
	copy(out, m.specs)
	return out
}

// TextReply is a convenience for scripting plain assistant text.
func TextReply(content string) models.Message {
	return models.Message{Role: "assistant", Content: content}
}
