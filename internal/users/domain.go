package users

import (
	"fmt"

	"github.com/warrick-io/warrick/internal/platform/httpx"
	"github.com/warrick-io/warrick/internal/shared"
)

// Account roles.
const (
	RoleAdmin = shared.RoleAdmin
	RoleStaff = "Staff"
)

// Portal selects which login screen a request came from.
type Portal string

// Login portals. The admin portal only admits admins.
const (
	PortalStandard Portal = "login"
	PortalAdmin    Portal = "admin"
)

var (
	// ErrNotFound is returned when a user id is unknown.
	ErrNotFound = fmt.Errorf("users: user %w", httpx.ErrNotFound)
	// ErrInvalidUser flags rejected registration or update input.
	ErrInvalidUser = fmt.Errorf("users: %w", httpx.ErrValidation)
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = fmt.Errorf("users: username %w", httpx.ErrDuplicate)
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = fmt.Errorf("users: cannot delete the signed-in account: %w", httpx.ErrForbidden)
	// ErrAdminPortal is returned when a non-admin signs in through the admin portal.
	ErrAdminPortal = fmt.Errorf("users: portal restricted to administrators: %w", httpx.ErrForbidden)
)

// User is a login account. Password holds a plaintext password written by
// older builds and is replaced by PasswordHash on first successful login.
type User struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Password     string `json:"password,omitempty"`
}

// Actor returns the request identity for u.
func (u User) Actor() shared.Actor {
	return shared.Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
}

// Profile is the public view of a user.
type Profile struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Profile strips credentials from u.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Role: u.Role, Name: u.Name, Username: u.Username, Mobile: u.Mobile, Email: u.Email}
}

// UserInput carries registration and update fields.
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Staff"`
}

// Session is the active-session pointer. Older builds stored the whole user
// object under the same key; only its id is read.
type Session struct {
	UserID    string `json:"id"`
	StartedAt int64  `json:"startedAt,omitempty"`
}
