package session

import (
	"context"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

// EntryState is the per-user entry state the gate manages: the mirror and
// its undo buffer.
type EntryState interface {
	Load(ctx context.Context, userID string) ([]entry.Entry, error)
	Reset()
}

// ArtifactState is the ephemeral AI artifact state cleared on session change.
type ArtifactState interface {
	Clear()
}
