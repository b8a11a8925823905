package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultName is given to accounts created at login without a name.
const DefaultName = "Client VIP"

// Seed returns the two demo accounts every storefront starts with.
func Seed(now time.Time) []User {
	return []User{
		{ID: "super-1", Email: "boss@afrimarket.com", Name: "Directeur Général", Role: RoleSuperadmin, Status: StatusActive, JoinedAt: now},
		{ID: "vendeur-1", Email: "vendeur@test.com", Name: "Électro Abidjan", Role: RoleAdmin, Status: StatusActive, JoinedAt: now},
	}
}

// Directory is the in-memory account list. Not safe for concurrent use.
type Directory struct {
	users []User
	newID func() string
}

// NewDirectory copies users. newID mints ids for accounts created at login;
// nil means random UUIDs.
func NewDirectory(users []User, newID func() string) *Directory {
	if newID == nil {
		newID = uuid.NewString
	}
	d := &Directory{
		users: make([]User, len(users)),
		newID: newID,
	}
	copy(d.users, users)
	return d
}

func (d *Directory) indexOf(id string) int {
	for i := range d.users {
		if d.users[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByEmail matches the whole address case-insensitively.
func (d *Directory) FindByEmail(email string) (User, bool) {
	email = strings.TrimSpace(email)
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

// Resolve returns the account for email, creating an active buyer account
// when none exists. created reports whether the directory grew. Blocked
// accounts are returned along with ErrUserBlocked.
func (d *Directory) Resolve(email, name string, now time.Time) (u User, created bool, err error) {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return User{}, false, ErrInvalidEmail
	}

	if existing, ok := d.FindByEmail(email); ok {
		if existing.IsBlocked() {
			return existing, false, ErrUserBlocked
		}
		return existing, false, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	u = User{
		ID:       d.newID(),
		Email:    email,
		Name:     name,
		Role:     RoleUser,
		Status:   StatusActive,
		JoinedAt: now,
	}
	d.users = append(d.users, u)
	return u, true, nil
}

func (d *Directory) Get(id string) (User, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.users[i], true
	}
	return User{}, false
}

// Update applies patch to the account with id.
func (d *Directory) Update(id string, patch Patch) (User, error) {
	if err := patch.Validate(); err != nil {
		return User{}, err
	}
	i := d.indexOf(id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	d.users[i] = patch.Apply(d.users[i])
	return d.users[i], nil
}

// Delete removes the account. Nothing else refers back to it.
func (d *Directory) Delete(id string) (User, error) {
	i := d.indexOf(id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	removed := d.users[i]
	d.users = append(d.users[:i], d.users[i+1:]...)
	return removed, nil
}

// All returns a copy of the accounts in directory order.
func (d *Directory) All() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

func (d *Directory) Len() int {
	return len(d.users)
}

// CountRole counts accounts holding role.
func (d *Directory) CountRole(role Role) int {
	n := 0
	for _, u := range d.users {
		if u.Role == role {
			n++
		}
	}
	return n
}
