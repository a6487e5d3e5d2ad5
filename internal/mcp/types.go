package mcp

import (
	"github.com/shadowtrack/shadowtrack/internal/domain/artifact"
	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

type AddEntryParams struct {
	Physician    string  `json:"physician"`
	Specialty    string  `json:"specialty"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	Observations string  `json:"observations"`
	Reflections  string  `json:"reflections"`
}

type EntryIDParams struct {
	ID string `json:"id"`
}

type SetToneParams struct {
	ID   string `json:"id"`
	Tone string `json:"tone"`
}

// ConfirmParams guards irreversible bulk operations. The operation runs
// only when confirm is true; the server never prompts, the caller confirms.
type ConfirmParams struct {
	Confirm bool `json:"confirm"`
}

type EmptyParams struct{}

// EntryView is an entry with its ephemeral AI artifacts layered on.
type EntryView struct {
	entry.Entry
	Artifacts artifact.Artifacts `json:"artifacts"`
}

type EntryResult struct {
	Entry entry.Entry `json:"entry"`
}

type ListEntriesResult struct {
	Entries    []EntryView `json:"entries"`
	TotalHours float64     `json:"total_hours"`
	CanUndo    bool        `json:"can_undo"`
}

type ListTrashResult struct {
	Entries []entry.Entry `json:"entries"`
}

type TotalHoursResult struct {
	TotalHours float64 `json:"total_hours"`
}

type DeleteEntryResult struct {
	CanUndo bool `json:"can_undo"`
}

type ClearEntriesResult struct {
	Trashed int `json:"trashed"`
}

type EmptyTrashResult struct {
	Removed []string `json:"removed"`
}

type DescriptionResult struct {
	Description string `json:"description,omitempty"`
	Present     bool   `json:"present"`
}

type InsightResult struct {
	Insight string `json:"insight,omitempty"`
	Present bool   `json:"present"`
}

type SetToneResult struct {
	Tone string `json:"tone,omitempty"`
}

type CopyResult struct {
	Copied bool `json:"copied"`
}

type SignOutResult struct {
	SignedOut bool `json:"signed_out"`
}
