package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
	"github.com/shadowtrack/shadowtrack/internal/domain/session"
)

// fakeEntryState records lifecycle calls in order and mimics the single
// shared mirror: current holds whatever the last Load put there.
type fakeEntryState struct {
	calls   []string
	loadErr error
	perUser map[string][]entry.Entry
	current []entry.Entry
}

func (f *fakeEntryState) Load(_ context.Context, userID string) ([]entry.Entry, error) {
	f.calls = append(f.calls, "load:"+userID)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.current = f.perUser[userID]
	return f.current, nil
}

func (f *fakeEntryState) Reset() {
	f.calls = append(f.calls, "reset")
	f.current = nil
}

type fakeArtifactState struct {
	clears int
}

func (f *fakeArtifactState) Clear() {
	f.clears++
}

func TestGate_EnsureSession_SignIn(t *testing.T) {
	entries := &fakeEntryState{}
	artifacts := &fakeArtifactState{}
	gate := session.NewGate(entries, artifacts, nil)

	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))

	user, ok := gate.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "u1", user)

	// State is cleared before the new user's entries load.
	require.Equal(t, []string{"reset", "load:u1"}, entries.calls)
	require.Equal(t, 1, artifacts.clears)
}

func TestGate_EnsureSession_SameUserIsNoop(t *testing.T) {
	entries := &fakeEntryState{}
	gate := session.NewGate(entries, &fakeArtifactState{}, nil)

	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))
	calls := len(entries.calls)

	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))
	require.Len(t, entries.calls, calls, "an established session must not reload")
}

func TestGate_EnsureSession_UserSwitchReplacesState(t *testing.T) {
	entries := &fakeEntryState{}
	artifacts := &fakeArtifactState{}
	gate := session.NewGate(entries, artifacts, nil)

	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))
	require.NoError(t, gate.EnsureSession(context.Background(), "u2"))

	user, _ := gate.CurrentUser()
	require.Equal(t, "u2", user)
	require.Equal(t, []string{"reset", "load:u1", "reset", "load:u2"}, entries.calls)
	require.Equal(t, 2, artifacts.clears)
}

func TestGate_EnsureSession_EmptyUser(t *testing.T) {
	gate := session.NewGate(&fakeEntryState{}, &fakeArtifactState{}, nil)

	err := gate.EnsureSession(context.Background(), "")
	require.ErrorIs(t, err, session.ErrAuthRequired)
}

func TestGate_EnsureSession_LoadFailureLeavesNoSession(t *testing.T) {
	entries := &fakeEntryState{loadErr: errors.New("store down")}
	gate := session.NewGate(entries, &fakeArtifactState{}, nil)

	require.Error(t, gate.EnsureSession(context.Background(), "u1"))

	_, ok := gate.CurrentUser()
	require.False(t, ok, "a failed load must not establish the session")

	// The retry attempts a fresh load instead of treating u1 as signed in.
	entries.loadErr = nil
	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))
	user, _ := gate.CurrentUser()
	require.Equal(t, "u1", user)
}

func TestGate_WithSession_ScopesReadsToSessionUser(t *testing.T) {
	store := &fakeEntryState{perUser: map[string][]entry.Entry{
		"u1": {{ID: "a1", UserID: "u1"}},
		"u2": {{ID: "b1", UserID: "u2"}},
	}}
	gate := session.NewGate(store, &fakeArtifactState{}, nil)
	ctx := context.Background()

	readUserIDs := func(userID string) []string {
		var ids []string
		require.NoError(t, gate.WithSession(ctx, userID, func(context.Context) error {
			for _, e := range store.current {
				ids = append(ids, e.UserID)
			}
			return nil
		}))
		return ids
	}

	require.Equal(t, []string{"u1"}, readUserIDs("u1"))
	require.Equal(t, []string{"u2"}, readUserIDs("u2"))
	// Switching back reloads u1's entries; u1 never observes u2's.
	require.Equal(t, []string{"u1"}, readUserIDs("u1"))
}

func TestGate_WithSession_BlocksSessionSwitchDuringUse(t *testing.T) {
	store := &fakeEntryState{perUser: map[string][]entry.Entry{
		"u1": {{ID: "a1", UserID: "u1"}},
		"u2": {{ID: "b1", UserID: "u2"}},
	}}
	gate := session.NewGate(store, &fakeArtifactState{}, nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	firstRead := make(chan []entry.Entry, 1)
	go func() {
		_ = gate.WithSession(ctx, "u1", func(context.Context) error {
			close(entered)
			<-release
			firstRead <- store.current
			return nil
		})
	}()
	<-entered

	secondDone := make(chan error, 1)
	go func() {
		secondDone <- gate.WithSession(ctx, "u2", func(context.Context) error { return nil })
	}()

	select {
	case <-secondDone:
		t.Fatal("second user's session replaced state while the first user's callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-secondDone)

	got := <-firstRead
	require.Len(t, got, 1)
	require.Equal(t, "u1", got[0].UserID)
}

func TestGate_WithSession_ErrorSkipsCallback(t *testing.T) {
	store := &fakeEntryState{loadErr: errors.New("store down")}
	gate := session.NewGate(store, &fakeArtifactState{}, nil)

	ran := false
	err := gate.WithSession(context.Background(), "u1", func(context.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	require.False(t, ran)

	err = gate.WithSession(context.Background(), "", func(context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, session.ErrAuthRequired)
	require.False(t, ran)
}

func TestGate_SignOut(t *testing.T) {
	entries := &fakeEntryState{}
	artifacts := &fakeArtifactState{}
	gate := session.NewGate(entries, artifacts, nil)

	require.NoError(t, gate.EnsureSession(context.Background(), "u1"))
	gate.SignOut()

	_, ok := gate.CurrentUser()
	require.False(t, ok)
	require.Equal(t, "reset", entries.calls[len(entries.calls)-1])
	require.Equal(t, 2, artifacts.clears)
}

func TestGate_SignOut_WithoutSession(t *testing.T) {
	entries := &fakeEntryState{}
	gate := session.NewGate(entries, &fakeArtifactState{}, nil)

	// Signing out with no session still clears state and does not panic.
	gate.SignOut()
	require.Equal(t, []string{"reset"}, entries.calls)
}
