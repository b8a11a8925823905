package storefront

import (
	"context"
	"errors"
	"log"

	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/infrastructure/store"
)

type pendingEvent struct {
	aggregateID   string
	aggregateType string
	eventType     string
	data          any
}

func event(aggregateID, aggregateType, eventType string, data any) pendingEvent {
	return pendingEvent{
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		eventType:     eventType,
		data:          data,
	}
}

// apply runs fn under the state lock and records the events it returns.
// Each transition with events draws a ticket under mu; appends then happen
// outside mu strictly in ticket order, so readers never wait on journal I/O.
func (m *Manager) apply(ctx context.Context, fn func() ([]pendingEvent, error)) error {
	m.mu.Lock()
	events, err := fn()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if len(events) == 0 {
		m.mu.Unlock()
		return nil
	}
	ticket := m.nextTicket
	m.nextTicket++
	m.mu.Unlock()

	m.awaitTurn(ticket)
	defer m.passTurn()
	m.record(ctx, events)
	return nil
}

func (m *Manager) awaitTurn(ticket uint64) {
	m.journalMu.Lock()
	defer m.journalMu.Unlock()
	for m.serving != ticket {
		m.journalTurn.Wait()
	}
}

func (m *Manager) passTurn() {
	m.journalMu.Lock()
	m.serving++
	m.journalMu.Unlock()
	m.journalTurn.Broadcast()
}

// record appends events to the journal. A failed append never undoes the
// transition that produced it.
func (m *Manager) record(ctx context.Context, events []pendingEvent) {
	for _, e := range events {
		_, err := m.journal.Append(ctx, e.aggregateID, e.aggregateType, e.eventType, e.data)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrPublishFailed):
			log.Printf("[Journal] %s %s stored, publish failed: %v", e.eventType, e.aggregateID, err)
		default:
			log.Printf("[Journal] Failed to append %s %s: %v", e.eventType, e.aggregateID, err)
		}
	}
}

// Events returns the journal in append order, or only the events of
// aggregateID when it is set. Superadmin only.
func (m *Manager) Events(aggregateID string) ([]store.Event, error) {
	m.mu.Lock()
	u, err := m.sessionUser()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleSuperadmin {
		return nil, ErrForbidden
	}
	if aggregateID != "" {
		return m.journal.GetEvents(aggregateID), nil
	}
	return m.journal.GetAllEvents(), nil
}
