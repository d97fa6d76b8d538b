package shared

import (
	"fmt"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)
	// ErrNoSession indicates a request without an active session.
	ErrNoSession = fmt.Errorf("no active session: %w", httpx.ErrUnauthorized)
	// ErrAdminRequired indicates the actor lacks the admin role.
	ErrAdminRequired = fmt.Errorf("admin role required: %w", httpx.ErrForbidden)
)
