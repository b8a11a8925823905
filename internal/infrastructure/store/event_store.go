package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s event %s: %w", e.EventType, e.ID, err)
	}
	return nil
}

func newEvent(aggregateID, aggregateType, eventType string, data any, version int) (Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}, nil
}

// EventStore keeps events in memory and publishes them
type EventStore struct {
	mu        sync.RWMutex
	events    map[string][]Event // aggregateID -> events
	log       []Event            // every event in append order
	publisher Publisher
}

// NewEventStore creates an in-memory journal. publisher may be nil.
func NewEventStore(publisher Publisher) *EventStore {
	return &EventStore{
		events:    make(map[string][]Event),
		log:       make([]Event, 0),
		publisher: publisher,
	}
}

// Append stores an event and publishes it. A publish failure is reported
// with ErrPublishFailed after the event is stored.
func (es *EventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	es.mu.Lock()
	event, err := newEvent(aggregateID, aggregateType, eventType, data, len(es.events[aggregateID])+1)
	if err != nil {
		es.mu.Unlock()
		return nil, err
	}
	es.events[aggregateID] = append(es.events[aggregateID], event)
	es.log = append(es.log, event)
	es.mu.Unlock()

	if err := publish(ctx, es.publisher, event); err != nil {
		return &event, err
	}
	return &event, nil
}

func publish(ctx context.Context, p Publisher, event Event) error {
	if p == nil {
		return nil
	}
	if err := p.Publish(ctx, event.AggregateID, event); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	return nil
}

// GetEvents returns all events for an aggregate
func (es *EventStore) GetEvents(aggregateID string) []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()
	out := make([]Event, len(es.events[aggregateID]))
	copy(out, es.events[aggregateID])
	return out
}

// GetAllEvents returns all events in append order
func (es *EventStore) GetAllEvents() []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()
	out := make([]Event, len(es.log))
	copy(out, es.log)
	return out
}
