// Package store defines the backend-agnostic interfaces for the remote
// resource store. Commands and the engine never talk HTTP directly.
package store

import (
	"context"
	"time"

	"taskdeck/internal/task"
)

// TaskStore executes task CRUD against the backend. Implementations are
// stateless request executors: one network round trip per call, no retry,
// no caching. Every failure is reported as a *RemoteError.
type TaskStore interface {
	// List returns the full task collection for userID.
	List(ctx context.Context, userID string) ([]task.Task, error)

	// Create stores a new task and returns the server's canonical
	// representation.
	Create(ctx context.Context, t task.Task) (task.Task, error)

	// Replace overwrites the task addressed by t.ID with the full record
	// and returns the canonical representation.
	Replace(ctx context.Context, t task.Task) (task.Task, error)

	// Delete removes the task addressed by id.
	Delete(ctx context.Context, id string) error
}

// UserStore executes account operations against the backend.
type UserStore interface {
	// Login exchanges email/password for a bearer credential.
	// Bad credentials surface as a *RemoteError with a 401 status.
	Login(ctx context.Context, email, password string) (Credentials, error)

	// FindByEmail returns user records matching an email. Used for the
	// duplicate check before registration.
	FindByEmail(ctx context.Context, email string) ([]User, error)

	// CreateUser registers a new account.
	CreateUser(ctx context.Context, email, password string) (User, error)
}

// Credentials are the result of a successful login. The token is opaque to
// the client.
type Credentials struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// User is a backend account record. Passwords never cross this boundary.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}
