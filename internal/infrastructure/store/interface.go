package store

import (
	"context"
	"errors"
)

// ErrPublishFailed marks an event that was stored but not delivered to the
// broker.
var ErrPublishFailed = errors.New("event stored but not published")

// EventStoreInterface defines the interface for event stores
type EventStoreInterface interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(aggregateID string) []Event
	GetAllEvents() []Event
}

// Publisher forwards stored events to a broker.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
