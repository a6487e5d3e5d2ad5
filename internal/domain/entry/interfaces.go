package entry

import "context"

// Repository provides persistence for entries.
//
// The store assigns ids and creation timestamps on insert; every query is
// scoped by the owning user id. Mutating calls return the stored row so
// callers can mirror confirmed server state instead of their own input.
// Missing rows surface as repository.ErrNotFound.
type Repository interface {
	// Insert stores a new entry and returns the stored row with the
	// assigned id and creation timestamp.
	Insert(ctx context.Context, userID string, e *Entry) (*Entry, error)

	// ListByUser returns all entries (active and trashed) for a user,
	// ordered by creation timestamp descending.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// SetDeleted updates the deleted flag of one entry and returns the
	// updated row.
	SetDeleted(ctx context.Context, userID, id string, deleted bool) (*Entry, error)

	// SetDeletedAll sets the deleted flag on every entry owned by the user.
	SetDeletedAll(ctx context.Context, userID string, deleted bool) error

	// PurgeTrashed physically deletes every trashed entry owned by the
	// user. Irreversible.
	PurgeTrashed(ctx context.Context, userID string) error
}
