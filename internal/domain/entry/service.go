package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shadowtrack/shadowtrack/internal/repository"
)

// Service is the entry lifecycle controller. It keeps the in-memory mirror
// in lockstep with the durable store: every transition writes to the store
// first and mutates the mirror only on confirmed success, so a failed write
// never leaves divergent local state.
//
// Undo is a single-slot buffer holding the snapshot of the most recently
// soft-deleted entry. Bulk operations never populate it.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu          sync.Mutex
	mirror      Mirror
	lastDeleted *Entry
}

// NewService creates a new entry lifecycle service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Load fetches all entries for the user and replaces the mirror wholesale.
// On failure the mirror is left empty rather than partially populated.
func (s *Service) Load(ctx context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.mirror.Clear()
		s.lastDeleted = nil
		s.logger.Error("entry fetch failed", "user", userID, "error", err)
		return nil, fmt.Errorf("fetching entries: %w", err)
	}

	s.mirror.Replace(entries)
	s.lastDeleted = nil
	return s.mirror.ActiveView(), nil
}

// Reset clears the mirror and the undo buffer. Called on sign-out.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror.Clear()
	s.lastDeleted = nil
}

// Create validates the request, inserts the entry into the durable store
// and prepends the stored row to the mirror.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.Insert(ctx, userID, &Entry{
		UserID:       userID,
		Physician:    req.Physician,
		Specialty:    req.Specialty,
		Date:         req.Date,
		Hours:        req.Hours,
		Observations: req.Observations,
		Reflections:  req.Reflections,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	s.mirror.Prepend(*stored)
	return stored, nil
}

// SoftDelete moves an active entry to the trash and snapshots it into the
// undo buffer. The snapshot is taken before the deleted flag flips.
func (s *Service) SoftDelete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.mirror.Get(id)
	if !ok {
		return ErrEntryNotFound
	}
	if current.Deleted {
		return ErrNotActive
	}

	if _, err := s.repo.SetDeleted(ctx, userID, id, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting entry: %w", err)
	}

	snapshot := current
	s.lastDeleted = &snapshot
	s.mirror.SetDeleted(id, true)
	return nil
}

// Undo restores the most recently soft-deleted entry. The mirror takes the
// server-returned row, and the buffer is cleared only on success so a
// failed undo can be retried.
func (s *Service) Undo(ctx context.Context, userID string) (*Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastDeleted == nil {
		return nil, ErrNothingToUndo
	}

	restored, err := s.repo.SetDeleted(ctx, userID, s.lastDeleted.ID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("undoing delete: %w", err)
	}

	s.mirror.Set(*restored)
	s.lastDeleted = nil
	return restored, nil
}

// Restore moves a trashed entry back to the active list. Independent of the
// undo buffer: it neither requires nor clears it.
func (s *Service) Restore(ctx context.Context, userID, id string) (*Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.mirror.Get(id)
	if !ok {
		return nil, ErrEntryNotFound
	}
	if !current.Deleted {
		return nil, ErrNotTrashed
	}

	restored, err := s.repo.SetDeleted(ctx, userID, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("restoring entry: %w", err)
	}

	s.mirror.Set(*restored)
	return restored, nil
}

// ClearAll trashes every entry owned by the user. Not undoable: the undo
// buffer is left untouched. The caller is expected to have confirmed the
// operation before invoking it.
func (s *Service) ClearAll(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SetDeletedAll(ctx, userID, true); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	s.mirror.SetDeletedAll(true)
	return nil
}

// EmptyTrash permanently deletes every trashed entry owned by the user and
// returns the removed ids. Irreversible; the caller is expected to have
// confirmed the operation before invoking it. A no-op when the trash is
// already empty.
func (s *Service) EmptyTrash(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.mirror.TrashedView()) == 0 {
		return nil, nil
	}

	if err := s.repo.PurgeTrashed(ctx, userID); err != nil {
		return nil, fmt.Errorf("emptying trash: %w", err)
	}

	return s.mirror.RemoveTrashed(), nil
}

// Active returns the active view of the mirror.
func (s *Service) Active() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.ActiveView()
}

// Trashed returns the trash view of the mirror.
func (s *Service) Trashed() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.TrashedView()
}

// Get returns one entry from the mirror by id.
func (s *Service) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Get(id)
}

// TotalHours sums hours across the active view.
func (s *Service) TotalHours() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AggregateHours(s.mirror.ActiveView())
}

// LastDeleted returns the undo buffer contents, if any.
func (s *Service) LastDeleted() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDeleted == nil {
		return Entry{}, false
	}
	return *s.lastDeleted, true
}
