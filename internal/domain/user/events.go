package user

import "time"

const (
	EventUserCreated   = "UserCreated"
	EventUserUpdated   = "UserUpdated"
	EventUserDeleted   = "UserDeleted"
	EventUserLoggedIn  = "UserLoggedIn"
	EventUserLoggedOut = "UserLoggedOut"
)

// UserCreated is emitted when a first login creates an account
type UserCreated struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdated is emitted when a superadmin edits an account
type UserUpdated struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserDeleted struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

// UserLoggedIn is emitted when a session is opened
type UserLoggedIn struct {
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	LoggedAt time.Time `json:"logged_at"`
}

// UserLoggedOut is emitted when the session is cleared
type UserLoggedOut struct {
	UserID   string    `json:"user_id"`
	LoggedAt time.Time `json:"logged_at"`
}
