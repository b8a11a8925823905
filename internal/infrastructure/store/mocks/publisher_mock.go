package mocks

import (
	"context"
	"sync"
)

// MockPublisher records published events
type MockPublisher struct {
	mu         sync.Mutex
	Published  []PublishCall
	PublishErr error
}

type PublishCall struct {
	Key   string
	Event any
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishCall{Key: key, Event: event})
	return m.PublishErr
}

func (m *MockPublisher) Calls() []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishCall, len(m.Published))
	copy(out, m.Published)
	return out
}
