package mcp

import (
	"context"
	"time"

	"github.com/shadowtrack/shadowtrack/internal/domain/artifact"
	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// copiedResetDelay is how long the cosmetic "copied" marker stays set.
const copiedResetDelay = 2 * time.Second

// Every handler runs its session-scoped work inside Gate.WithSession so a
// concurrent session switch by another user cannot replace the mirror
// between the session check and the reads.
func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_entry",
		Description: "Record a new shadowing session entry. All fields are required.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddEntryParams) (*sdkmcp.CallToolResult, EntryResult, error) {
		userID := getUserID(ctx)
		var created *entry.Entry
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			var err error
			created, err = svc.Entries.Create(ctx, userID, entry.CreateRequest{
				Physician:    in.Physician,
				Specialty:    in.Specialty,
				Date:         in.Date,
				Hours:        in.Hours,
				Observations: in.Observations,
				Reflections:  in.Reflections,
			})
			return err
		})
		if err != nil {
			return nil, EntryResult{}, mapError(err)
		}
		return nil, EntryResult{Entry: *created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entries",
		Description: "List active entries newest first, with AI artifacts and the total hours aggregate.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListEntriesResult, error) {
		userID := getUserID(ctx)
		var out ListEntriesResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			active := svc.Entries.Active()
			views := make([]EntryView, 0, len(active))
			for _, e := range active {
				views = append(views, EntryView{Entry: e, Artifacts: svc.Artifacts.Get(e.ID)})
			}
			_, canUndo := svc.Entries.LastDeleted()
			out = ListEntriesResult{
				Entries:    views,
				TotalHours: svc.Entries.TotalHours(),
				CanUndo:    canUndo,
			}
			return nil
		})
		if err != nil {
			return nil, ListEntriesResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_trash",
		Description: "List trashed entries newest first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListTrashResult, error) {
		userID := getUserID(ctx)
		var out ListTrashResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			out = ListTrashResult{Entries: svc.Entries.Trashed()}
			return nil
		})
		if err != nil {
			return nil, ListTrashResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "total_hours",
		Description: "Sum hours across active entries. Trashed entries are excluded.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, TotalHoursResult, error) {
		userID := getUserID(ctx)
		var out TotalHoursResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			out = TotalHoursResult{TotalHours: svc.Entries.TotalHours()}
			return nil
		})
		if err != nil {
			return nil, TotalHoursResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_entry",
		Description: "Move an active entry to the trash. The most recent delete can be undone with undo_delete.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, DeleteEntryResult, error) {
		userID := getUserID(ctx)
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			return svc.Entries.SoftDelete(ctx, userID, in.ID)
		})
		if err != nil {
			return nil, DeleteEntryResult{}, mapError(err)
		}
		return nil, DeleteEntryResult{CanUndo: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "undo_delete",
		Description: "Undo the most recent delete, restoring the entry to its pre-delete state.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, EntryResult, error) {
		userID := getUserID(ctx)
		var restored *entry.Entry
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			var err error
			restored, err = svc.Entries.Undo(ctx, userID)
			return err
		})
		if err != nil {
			return nil, EntryResult{}, mapError(err)
		}
		return nil, EntryResult{Entry: *restored}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_entry",
		Description: "Restore a trashed entry to the active list.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, EntryResult, error) {
		userID := getUserID(ctx)
		var restored *entry.Entry
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			var err error
			restored, err = svc.Entries.Restore(ctx, userID, in.ID)
			return err
		})
		if err != nil {
			return nil, EntryResult{}, mapError(err)
		}
		return nil, EntryResult{Entry: *restored}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_entries",
		Description: "Move every entry to the trash. Cannot be undone; requires confirm=true.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ConfirmParams) (*sdkmcp.CallToolResult, ClearEntriesResult, error) {
		userID := getUserID(ctx)
		var out ClearEntriesResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			if !in.Confirm {
				return &APIError{Code: "CONFIRM_REQUIRED", Message: "clear_entries is irreversible", RecoveryHint: "Repeat the call with confirm=true"}
			}
			if err := svc.Entries.ClearAll(ctx, userID); err != nil {
				return err
			}
			out = ClearEntriesResult{Trashed: len(svc.Entries.Trashed())}
			return nil
		})
		if err != nil {
			return nil, ClearEntriesResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "empty_trash",
		Description: "Permanently delete every trashed entry. Irreversible; requires confirm=true.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ConfirmParams) (*sdkmcp.CallToolResult, EmptyTrashResult, error) {
		userID := getUserID(ctx)
		var out EmptyTrashResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			if !in.Confirm {
				return &APIError{Code: "CONFIRM_REQUIRED", Message: "empty_trash permanently deletes entries", RecoveryHint: "Repeat the call with confirm=true"}
			}
			removed, err := svc.Entries.EmptyTrash(ctx, userID)
			if err != nil {
				return err
			}
			for _, id := range removed {
				svc.Artifacts.Forget(id)
			}
			out = EmptyTrashResult{Removed: removed}
			return nil
		})
		if err != nil {
			return nil, EmptyTrashResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_description",
		Description: "Generate an AI activity description for an entry, or hide an existing one. Hiding makes no network call.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, DescriptionResult, error) {
		e, err := activeEntry(ctx, svc, getUserID(ctx), in.ID)
		if err != nil {
			return nil, DescriptionResult{}, err
		}
		text, present := svc.Artifacts.ToggleDescription(ctx, e)
		return nil, DescriptionResult{Description: text, Present: present}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "analyze_insight",
		Description: "Analyze an entry's observations and reflections for character traits, or hide an existing insight.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, InsightResult, error) {
		e, err := activeEntry(ctx, svc, getUserID(ctx), in.ID)
		if err != nil {
			return nil, InsightResult{}, err
		}
		text, present := svc.Artifacts.ToggleInsight(ctx, e)
		return nil, InsightResult{Insight: text, Present: present}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_tone",
		Description: "Select a rewrite tone (confident, humble, emotional, professional) for an entry's description. An empty tone clears the selection.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SetToneParams) (*sdkmcp.CallToolResult, SetToneResult, error) {
		userID := getUserID(ctx)
		var out SetToneResult
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			tone, err := artifact.ParseTone(in.Tone)
			if err != nil {
				return err
			}
			svc.Artifacts.SetTone(in.ID, tone)
			out = SetToneResult{Tone: string(tone)}
			return nil
		})
		if err != nil {
			return nil, SetToneResult{}, mapError(err)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "tune_tone",
		Description: "Rewrite the entry's current description in the selected tone. The rewrite replaces the description permanently.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, DescriptionResult, error) {
		e, err := activeEntry(ctx, svc, getUserID(ctx), in.ID)
		if err != nil {
			return nil, DescriptionResult{}, err
		}
		text, err := svc.Artifacts.TuneTone(ctx, e)
		if err != nil {
			return nil, DescriptionResult{}, mapError(err)
		}
		return nil, DescriptionResult{Description: text, Present: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "copy_description",
		Description: "Copy the entry's generated description to the clipboard.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EntryIDParams) (*sdkmcp.CallToolResult, CopyResult, error) {
		userID := getUserID(ctx)
		err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
			text, ok := svc.Artifacts.Description(in.ID)
			if !ok {
				return artifact.ErrNoDescription
			}
			if err := svc.Artifacts.CopyToClipboard(in.ID, text); err != nil {
				return err
			}
			// The marker is cosmetic; reset it after a short delay.
			time.AfterFunc(copiedResetDelay, func() { svc.Artifacts.ClearCopied(in.ID) })
			return nil
		})
		if err != nil {
			return nil, CopyResult{}, mapError(err)
		}
		return nil, CopyResult{Copied: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sign_out",
		Description: "End the session: clears the entry mirror, the undo buffer and all AI artifacts.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, SignOutResult, error) {
		svc.Gate.SignOut()
		return nil, SignOutResult{SignedOut: true}, nil
	})
}

// activeEntry establishes the session and returns a copy of the active
// entry with the given id. AI operations are only available for active
// entries; the copy lets the provider call proceed outside the session
// lock, so generations for different entries can overlap.
func activeEntry(ctx context.Context, svc Services, userID, id string) (entry.Entry, error) {
	var e entry.Entry
	err := svc.Gate.WithSession(ctx, userID, func(ctx context.Context) error {
		got, ok := svc.Entries.Get(id)
		if !ok {
			return entry.ErrEntryNotFound
		}
		if got.Deleted {
			return entry.ErrNotActive
		}
		e = got
		return nil
	})
	if err != nil {
		return entry.Entry{}, mapError(err)
	}
	return e, nil
}
