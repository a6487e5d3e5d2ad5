package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Gate maps authentication state to mirror lifecycle. Signing in populates
// the entry mirror for that user; signing out or switching users clears the
// mirror, the undo buffer and all AI artifacts before anything else runs,
// so the mirror never holds another user's entries after a session change.
//
// The mirror is a single slot shared by all sessions. Callers that read it
// must do so inside WithSession: the session lock is held across the whole
// callback, so another user's session switch cannot replace the mirror
// between the session check and the read.
type Gate struct {
	entries   EntryState
	artifacts ArtifactState
	logger    *slog.Logger

	mu          sync.Mutex
	currentUser string
}

// NewGate creates a session gate over the given entry and artifact state.
func NewGate(entries EntryState, artifacts ArtifactState, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{entries: entries, artifacts: artifacts, logger: logger}
}

// EnsureSession establishes a session for userID, reloading state when the
// user changed. The reload fully replaces prior state, never merges. An
// empty userID fails fast with ErrAuthRequired.
func (g *Gate) EnsureSession(ctx context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ensureLocked(ctx, userID)
}

// WithSession establishes a session for userID and runs fn under the
// session lock, so everything fn observes belongs to userID. fn must not
// call back into the gate.
func (g *Gate) WithSession(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.ensureLocked(ctx, userID); err != nil {
		return err
	}
	return fn(ctx)
}

func (g *Gate) ensureLocked(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if g.currentUser == userID {
		return nil
	}

	g.entries.Reset()
	g.artifacts.Clear()
	g.currentUser = ""

	if _, err := g.entries.Load(ctx, userID); err != nil {
		return fmt.Errorf("loading session for user: %w", err)
	}

	g.currentUser = userID
	g.logger.Info("session established", "user", userID)
	return nil
}

// SignOut clears the mirror, undo buffer and artifacts, and forgets the
// current user.
func (g *Gate) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.currentUser != "" {
		g.logger.Info("session ended", "user", g.currentUser)
	}
	g.entries.Reset()
	g.artifacts.Clear()
	g.currentUser = ""
}

// CurrentUser returns the signed-in user id, if any.
func (g *Gate) CurrentUser() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentUser, g.currentUser != ""
}
