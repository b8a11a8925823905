// Package storefront holds the store state manager: the single owner of the
// catalog, cart, orders, accounts, session, notifications and active view.
// Every mutation goes through a Manager method, runs to completion under the
// manager's lock, and is then recorded in the event journal.
package storefront

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/infrastructure/store"
	"github.com/example/afrimarket/internal/toast"
)

type View string

const (
	ViewStore     View = "store"
	ViewDashboard View = "dashboard"
)

type Manager struct {
	mu sync.Mutex

	// nextTicket is guarded by mu; serving by journalMu.
	nextTicket  uint64
	serving     uint64
	journalMu   sync.Mutex
	journalTurn *sync.Cond

	products []product.Product
	orders   []order.Order
	accounts []user.User
	users    *user.Directory
	cart     *cart.Cart
	session  *user.User
	view     View

	// pendingRef is the payment reference handed out by the last Checkout.
	pendingRef string
	early      *verdict

	toasts    *toast.Center
	journal   store.EventStoreInterface
	publicKey string
	newID     func() string
	now       func() time.Time
}

type Option func(*Manager)

// WithJournal replaces the default in-memory journal.
func WithJournal(es store.EventStoreInterface) Option {
	return func(m *Manager) { m.journal = es }
}

func WithToasts(c *toast.Center) Option {
	return func(m *Manager) { m.toasts = c }
}

// WithPaymentKey sets the FedaPay public key copied into checkout requests.
func WithPaymentKey(publicKey string) Option {
	return func(m *Manager) { m.publicKey = publicKey }
}

// WithCatalog replaces the embedded seed catalog.
func WithCatalog(products []product.Product) Option {
	return func(m *Manager) {
		m.products = make([]product.Product, len(products))
		copy(m.products, products)
	}
}

// WithUsers replaces the two seed accounts.
func WithUsers(users []user.User) Option {
	return func(m *Manager) {
		m.accounts = make([]user.User, len(users))
		copy(m.accounts, users)
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// New builds a manager over the seed catalog and seed accounts.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		orders: make([]order.Order, 0),
		cart:   cart.New(),
		view:   ViewStore,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	m.journalTurn = sync.NewCond(&m.journalMu)
	for _, opt := range opts {
		opt(m)
	}

	if m.products == nil {
		seed, err := product.Seed()
		if err != nil {
			return nil, fmt.Errorf("load seed catalog: %w", err)
		}
		m.products = seed
	}
	if m.accounts == nil {
		m.accounts = user.Seed(m.now())
	}
	m.users = user.NewDirectory(m.accounts, m.newID)
	m.accounts = nil
	if m.toasts == nil {
		m.toasts = toast.NewCenter(toast.DefaultTTL)
	}
	if m.journal == nil {
		m.journal = store.NewEventStore(nil)
	}
	return m, nil
}

// sessionUser returns the logged-in account. Callers hold mu.
func (m *Manager) sessionUser() (user.User, error) {
	if m.session == nil {
		return user.User{}, ErrAuthRequired
	}
	return *m.session, nil
}

// Session reports the logged-in account, if any.
func (m *Manager) Session() (user.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return user.User{}, false
	}
	return *m.session, true
}

func (m *Manager) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// SetView switches between the storefront and the dashboard. The dashboard
// needs a session.
func (m *Manager) SetView(view View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch view {
	case ViewStore:
	case ViewDashboard:
		if m.session == nil {
			return ErrAuthRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	m.view = view
	return nil
}

// Notify shows a message that disappears on its own.
func (m *Manager) Notify(text string, kind toast.Kind) toast.Message {
	return m.toasts.Notify(text, kind)
}

// RemoveToast closes a message early. Closing an expired one is harmless.
func (m *Manager) RemoveToast(id string) bool {
	return m.toasts.Remove(id)
}

func (m *Manager) Toasts() []toast.Message {
	return m.toasts.List()
}
