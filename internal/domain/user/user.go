package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const AggregateType = "User"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrInvalidRole  = errors.New("unknown role")
	ErrInvalidState = errors.New("unknown account status")
	ErrUserBlocked  = errors.New("user account is blocked")
)

// emailRegex is a pragmatic check, not full RFC 5322.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// ParseRole accepts the three role names.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusBlocked:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
}

// CanSell reports whether the role may list products and manage orders.
func (r Role) CanSell() bool {
	switch r {
	case RoleAdmin, RoleSuperadmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

type User struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	Status   Status    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

func (u User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	Name   *string `json:"name,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// Validate checks that any role or status in the patch is known.
func (p Patch) Validate() error {
	if p.Role != nil {
		if _, err := ParseRole(string(*p.Role)); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch into u.
func (p Patch) Apply(u User) User {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		if r, err := ParseRole(string(*p.Role)); err == nil {
			u.Role = r
		}
	}
	if p.Status != nil {
		if st, err := ParseStatus(string(*p.Status)); err == nil {
			u.Status = st
		}
	}
	return u
}
