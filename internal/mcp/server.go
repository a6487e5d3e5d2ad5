package mcp

import (
	"context"
	"log/slog"

	"github.com/shadowtrack/shadowtrack/internal/domain/artifact"
	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `shadowtrack records physician shadowing sessions and enriches them with AI-generated text.

Core concepts:
- Entry: one shadowing session (physician, specialty, date, hours, observations, reflections). Entries are either active or in the trash; trashed entries can be restored, active totals exclude them.
- Undo: only the most recent single delete can be undone (undo_delete). Bulk operations cannot.
- AI artifacts: per-entry generated description, insight and tone rewrites are ephemeral; they are never stored and vanish on sign-out.

Workflow:
1) add_entry to log a session; list_entries shows active entries with artifacts and the running total_hours.
2) delete_entry moves an entry to the trash; undo_delete reverses the last delete; restore_entry recovers any trashed entry.
3) clear_entries and empty_trash are bulk operations guarded by confirm=true. empty_trash permanently deletes; there is no recovery.
4) toggle_description generates (or hides) a ~700-character activity description; analyze_insight extracts character traits; set_tone then tune_tone rewrites the description in that tone, replacing it.
5) copy_description places the generated text on the clipboard.
`

// EntryService defines entry lifecycle operations needed by MCP.
type EntryService interface {
	Create(ctx context.Context, userID string, req entry.CreateRequest) (*entry.Entry, error)
	SoftDelete(ctx context.Context, userID, id string) error
	Undo(ctx context.Context, userID string) (*entry.Entry, error)
	Restore(ctx context.Context, userID, id string) (*entry.Entry, error)
	ClearAll(ctx context.Context, userID string) error
	EmptyTrash(ctx context.Context, userID string) ([]string, error)
	Active() []entry.Entry
	Trashed() []entry.Entry
	Get(id string) (entry.Entry, bool)
	TotalHours() float64
	LastDeleted() (entry.Entry, bool)
}

// ArtifactService defines AI artifact operations needed by MCP.
type ArtifactService interface {
	ToggleDescription(ctx context.Context, e entry.Entry) (string, bool)
	ToggleInsight(ctx context.Context, e entry.Entry) (string, bool)
	SetTone(entryID string, tone artifact.Tone)
	TuneTone(ctx context.Context, e entry.Entry) (string, error)
	CopyToClipboard(entryID, text string) error
	ClearCopied(entryID string)
	Description(entryID string) (string, bool)
	Get(entryID string) artifact.Artifacts
	Forget(entryID string)
}

// SessionGate maps authentication state to mirror lifecycle. WithSession
// holds the session lock for the duration of fn, so session-scoped reads
// never observe another user's entries.
type SessionGate interface {
	WithSession(ctx context.Context, userID string, fn func(ctx context.Context) error) error
	SignOut()
}

// Services contains all domain services needed by MCP.
type Services struct {
	Gate      SessionGate
	Entries   EntryService
	Artifacts ArtifactService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "shadowtrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio mode is local-only; auth applies to HTTP.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware("local"))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
