package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
	"github.com/shadowtrack/shadowtrack/internal/repository"
)

// EntryRepository implements entry.Repository for SQLite.
// Ids and creation timestamps are assigned here on insert, so callers see
// only stored rows.
type EntryRepository struct {
	db *DB
}

var _ entry.Repository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Insert stores a new entry and returns the stored row.
func (r *EntryRepository) Insert(ctx context.Context, userID string, e *entry.Entry) (*entry.Entry, error) {
	stored := *e
	stored.ID = uuid.NewString()
	stored.UserID = userID
	stored.Deleted = false
	stored.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO shadowing_entries (
			id, user_id, physician, specialty, date, hours,
			observations, reflections, deleted, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		stored.ID,
		stored.UserID,
		stored.Physician,
		stored.Specialty,
		stored.Date,
		stored.Hours,
		stored.Observations,
		stored.Reflections,
		boolToInt(stored.Deleted),
		stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	return &stored, nil
}

// ListByUser returns all entries for a user, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]entry.Entry, error) {
	query := `
		SELECT id, user_id, physician, specialty, date, hours,
		       observations, reflections, deleted, created_at
		FROM shadowing_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// SetDeleted flips the deleted flag of one entry and returns the updated row.
func (r *EntryRepository) SetDeleted(ctx context.Context, userID, id string, deleted bool) (*entry.Entry, error) {
	query := `
		UPDATE shadowing_entries
		SET deleted = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, boolToInt(deleted), id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.get(ctx, userID, id)
}

// SetDeletedAll flips the deleted flag on every entry owned by the user.
func (r *EntryRepository) SetDeletedAll(ctx context.Context, userID string, deleted bool) error {
	query := `UPDATE shadowing_entries SET deleted = ? WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, boolToInt(deleted), userID); err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}
	return nil
}

// PurgeTrashed physically deletes every trashed entry owned by the user.
func (r *EntryRepository) PurgeTrashed(ctx context.Context, userID string) error {
	query := `DELETE FROM shadowing_entries WHERE user_id = ? AND deleted = 1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to purge trashed entries: %w", err)
	}
	return nil
}

func (r *EntryRepository) get(ctx context.Context, userID, id string) (*entry.Entry, error) {
	query := `
		SELECT id, user_id, physician, specialty, date, hours,
		       observations, reflections, deleted, created_at
		FROM shadowing_entries
		WHERE id = ? AND user_id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (entry.Entry, error) {
	var e entry.Entry
	var deleted int
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Physician,
		&e.Specialty,
		&e.Date,
		&e.Hours,
		&e.Observations,
		&e.Reflections,
		&deleted,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, err
		}
		return entry.Entry{}, fmt.Errorf("failed to scan entry: %w", err)
	}
	e.Deleted = deleted != 0
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
