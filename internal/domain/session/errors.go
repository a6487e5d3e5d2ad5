package session

import "errors"

// ErrAuthRequired indicates an operation needs an authenticated user.
// Write attempts abort with this error rather than falling back to a stale
// or default user id.
var ErrAuthRequired = errors.New("authentication required")
