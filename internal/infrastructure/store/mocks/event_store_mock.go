package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/afrimarket/internal/infrastructure/store"
	"github.com/google/uuid"
)

// MockEventStore is a mock implementation of EventStoreInterface for testing
type MockEventStore struct {
	mu  sync.RWMutex
	log []store.Event

	// For tracking calls in tests
	AppendCalls []AppendCall
	AppendErr   error
}

// AppendCall records parameters passed to Append
type AppendCall struct {
	AggregateID   string
	AggregateType string
	EventType     string
	Data          any
}

// NewMockEventStore creates a new MockEventStore
func NewMockEventStore() *MockEventStore {
	return &MockEventStore{
		log:         make([]store.Event, 0),
		AppendCalls: make([]AppendCall, 0),
	}
}

// Append records the call and keeps the event unless AppendErr is set
func (m *MockEventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, AppendCall{
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          data,
	})

	if m.AppendErr != nil {
		return nil, m.AppendErr
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	version := 1
	for _, e := range m.log {
		if e.AggregateID == aggregateID {
			version++
		}
	}
	event := store.Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}
	m.log = append(m.log, event)
	return &event, nil
}

// GetEvents returns events for an aggregate
func (m *MockEventStore) GetEvents(aggregateID string) []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []store.Event
	for _, e := range m.log {
		if e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out
}

// GetAllEvents returns all events
func (m *MockEventStore) GetAllEvents() []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]store.Event, len(m.log))
	copy(out, m.log)
	return out
}

// EventTypes lists the recorded event types in call order
func (m *MockEventStore) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.AppendCalls))
	for i, c := range m.AppendCalls {
		out[i] = c.EventType
	}
	return out
}

// CallsOfType returns the Append calls for one event type
func (m *MockEventStore) CallsOfType(eventType string) []AppendCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []AppendCall
	for _, c := range m.AppendCalls {
		if c.EventType == eventType {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears all events and recorded calls
func (m *MockEventStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = make([]store.Event, 0)
	m.AppendCalls = make([]AppendCall, 0)
	m.AppendErr = nil
}
