package store

import "fmt"

// RemoteError wraps any network, timeout, or non-2xx failure from the
// backend. Status is the HTTP status code, or zero when the request never
// produced a response.
type RemoteError struct {
	Op     string // "list tasks", "create user", ...
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Unauthorized reports whether the failure was an authentication rejection.
func (e *RemoteError) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}
