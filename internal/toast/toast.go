// Package toast keeps the short-lived notifications shown to the shopper.
// Every message removes itself after a fixed delay; timers are independent
// of each other and cannot be cancelled.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Message struct {
	ID        string    `json:"id"`
	Type      Kind      `json:"type"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Center holds the visible messages in arrival order.
type Center struct {
	mu       sync.Mutex
	messages []Message
	ttl      time.Duration
	schedule Scheduler
	newID    func() string
	now      func() time.Time
}

type Option func(*Center)

// WithScheduler replaces time.AfterFunc, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(c *Center) { c.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

func NewCenter(ttl time.Duration, opts ...Option) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Center{
		messages: make([]Message, 0),
		ttl:      ttl,
		schedule: afterFunc,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify appends a message and schedules its removal.
func (c *Center) Notify(text string, kind Kind) Message {
	msg := Message{
		ID:        c.newID(),
		Type:      kind,
		Text:      text,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	id := msg.ID
	c.schedule(c.ttl, func() { c.Remove(id) })
	return msg
}

// Remove drops the message with id. Removing twice is harmless; the bool
// reports whether a message was actually dropped.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the visible messages, oldest first.
func (c *Center) List() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Center) TTL() time.Duration {
	return c.ttl
}
