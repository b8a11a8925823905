package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler collects pending callbacks so tests decide when they fire.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (s *manualScheduler) schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, f)
	s.delays = append(s.delays, d)
}

func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	f := s.pending[i]
	s.mu.Unlock()
	f()
}

func newTestCenter() (*Center, *manualScheduler) {
	s := &manualScheduler{}
	return NewCenter(DefaultTTL, WithScheduler(s.schedule)), s
}

func texts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

// ============================================
// Notify Tests
// ============================================

func TestCenter_Notify_ArrivalOrder(t *testing.T) {
	c, s := newTestCenter()

	a := c.Notify("Produit supprimé", KindInfo)
	b := c.Notify("Déconnexion réussie", KindSuccess)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{"Produit supprimé", "Déconnexion réussie"}, texts(c.List()))
	assert.Equal(t, KindInfo, c.List()[0].Type)
	require.Len(t, s.delays, 2)
	assert.Equal(t, 5*time.Second, s.delays[0])
}

func TestCenter_ExpiryIsPerMessage(t *testing.T) {
	c, s := newTestCenter()
	c.Notify("first", KindInfo)
	c.Notify("second", KindInfo)
	c.Notify("third", KindInfo)

	s.fire(1)

	assert.Equal(t, []string{"first", "third"}, texts(c.List()))
}

func TestCenter_RemoveIsIdempotent(t *testing.T) {
	c, s := newTestCenter()
	m := c.Notify("bye", KindSuccess)

	assert.True(t, c.Remove(m.ID))
	s.fire(0)
	assert.False(t, c.Remove(m.ID))
	assert.Empty(t, c.List())
}

func TestCenter_ListIsCopy(t *testing.T) {
	c, _ := newTestCenter()
	c.Notify("hello", KindInfo)

	list := c.List()
	list[0].Text = "changed"

	assert.Equal(t, "hello", c.List()[0].Text)
}

func TestNewCenter_DefaultTTL(t *testing.T) {
	c := NewCenter(0)
	assert.Equal(t, DefaultTTL, c.TTL())
}

func TestCenter_RealTimerExpires(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)
	c.Notify("ephemeral", KindInfo)

	assert.Eventually(t, func() bool {
		return len(c.List()) == 0
	}, time.Second, 5*time.Millisecond)
}
