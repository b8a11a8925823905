package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/toast"
)

const msgAccountSuspended = "Votre compte est suspendu. Contactez le support."

// Login opens a session for email. A known address adopts the stored
// account; an unknown one becomes a new buyer account named name.
func (m *Manager) Login(ctx context.Context, email, name string) (user.User, error) {
	var u user.User
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		now := m.now()
		resolved, created, err := m.users.Resolve(email, name, now)
		if errors.Is(err, user.ErrUserBlocked) {
			m.toasts.Notify(msgAccountSuspended, toast.KindError)
			log.Printf("[Storefront] Refused login for blocked account %s", resolved.ID)
			return nil, err
		}
		if err != nil {
			return nil, err
		}

		u = resolved
		session := u
		m.session = &session
		m.toasts.Notify(fmt.Sprintf("Bienvenue, %s! Rôle: %s", u.Name, u.Role), toast.KindSuccess)

		events := make([]pendingEvent, 0, 2)
		if created {
			events = append(events, event(u.ID, user.AggregateType, user.EventUserCreated, user.UserCreated{
				UserID:    u.ID,
				Email:     u.Email,
				Name:      u.Name,
				Role:      u.Role,
				CreatedAt: now,
			}))
		}
		events = append(events, event(u.ID, user.AggregateType, user.EventUserLoggedIn, user.UserLoggedIn{
			UserID:   u.ID,
			Role:     u.Role,
			LoggedAt: now,
		}))
		return events, nil
	})
	return u, err
}

// Logout clears the session and returns to the storefront.
func (m *Manager) Logout(ctx context.Context) error {
	return m.apply(ctx, func() ([]pendingEvent, error) {
		u, err := m.sessionUser()
		if err != nil {
			return nil, err
		}
		m.session = nil
		m.view = ViewStore
		m.toasts.Notify("Déconnexion réussie", toast.KindSuccess)

		return []pendingEvent{event(u.ID, user.AggregateType, user.EventUserLoggedOut, user.UserLoggedOut{
			UserID:   u.ID,
			LoggedAt: m.now(),
		})}, nil
	})
}

// requireSuperadmin returns the session holder if they run the platform.
// Callers hold mu.
func (m *Manager) requireSuperadmin() (user.User, error) {
	u, err := m.sessionUser()
	if err != nil {
		return user.User{}, err
	}
	if u.Role != user.RoleSuperadmin {
		return user.User{}, ErrForbidden
	}
	return u, nil
}

// Users lists every account. Superadmin only.
func (m *Manager) Users() ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.requireSuperadmin(); err != nil {
		return nil, err
	}
	return m.users.All(), nil
}

// User returns one account. Superadmin only.
func (m *Manager) User(id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.requireSuperadmin(); err != nil {
		return user.User{}, err
	}
	u, ok := m.users.Get(id)
	if !ok {
		return user.User{}, fmt.Errorf("%w: %s", user.ErrUserNotFound, id)
	}
	return u, nil
}

// UpdateUser merges patch into an account. Superadmin only.
func (m *Manager) UpdateUser(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	var updated user.User
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		admin, err := m.requireSuperadmin()
		if err != nil {
			return nil, err
		}

		updated, err = m.users.Update(id, patch)
		if err != nil {
			return nil, err
		}
		if m.session != nil && m.session.ID == updated.ID {
			session := updated
			m.session = &session
		}
		m.toasts.Notify("Utilisateur mis à jour", toast.KindInfo)

		return []pendingEvent{event(updated.ID, user.AggregateType, user.EventUserUpdated, user.UserUpdated{
			UserID:    updated.ID,
			Name:      updated.Name,
			Role:      updated.Role,
			Status:    updated.Status,
			UpdatedBy: admin.ID,
			UpdatedAt: m.now(),
		})}, nil
	})
	return updated, err
}

// DeleteUser removes an account once confirmed. Their products and orders
// stay. Superadmin only.
func (m *Manager) DeleteUser(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return m.apply(ctx, func() ([]pendingEvent, error) {
		admin, err := m.requireSuperadmin()
		if err != nil {
			return nil, err
		}

		removed, err := m.users.Delete(id)
		if err != nil {
			return nil, err
		}
		if m.session != nil && m.session.ID == removed.ID {
			m.session = nil
			m.view = ViewStore
		}
		m.toasts.Notify("Utilisateur retiré", toast.KindError)

		return []pendingEvent{event(removed.ID, user.AggregateType, user.EventUserDeleted, user.UserDeleted{
			UserID:    removed.ID,
			Email:     removed.Email,
			DeletedBy: admin.ID,
			DeletedAt: m.now(),
		})}, nil
	})
}
