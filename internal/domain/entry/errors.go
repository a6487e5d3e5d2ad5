package entry

import "errors"

var (
	// ErrEntryNotFound indicates the entry doesn't exist in the mirror.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNotActive indicates the entry is trashed and the operation needs an active entry.
	ErrNotActive = errors.New("entry is not active")
	// ErrNotTrashed indicates the entry is active and the operation needs a trashed entry.
	ErrNotTrashed = errors.New("entry is not trashed")
	// ErrNothingToUndo indicates the undo buffer is empty.
	ErrNothingToUndo = errors.New("no deleted entry to undo")
	// ErrInvalidInput indicates invalid input for entry operations.
	ErrInvalidInput = errors.New("invalid entry input")
	// ErrUserRequired indicates an entry operation was attempted without an
	// authenticated user id.
	ErrUserRequired = errors.New("authenticated user required")
)
