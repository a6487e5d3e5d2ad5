package artifact

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

// Fallback artifact text stored when a generation call fails. The artifact
// slot always resolves to displayable text; provider errors are never
// propagated to the caller.
const (
	fallbackDescription = "Failed to generate description."
	fallbackInsight     = "Insight analysis failed."
	fallbackTune        = "Failed to tune tone."
)

// Completer is the text-generation boundary: one prompt in, one completion
// out. Single-shot and best-effort; the cache performs no retries.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Clipboard writes text to the platform clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Cache holds the ephemeral AI artifacts layered onto entries, keyed by
// entry id. Nothing here is persisted; everything is lost on sign-out.
//
// Generation is idempotent-by-replacement: a new generation overwrites the
// prior value. The in-flight markers are advisory; the mutex protects map
// state only and is released for the duration of provider calls, so
// generations for different entries may run concurrently.
type Cache struct {
	completer Completer
	clipboard Clipboard
	logger    *slog.Logger

	mu           sync.Mutex
	descriptions map[string]string
	insights     map[string]string
	tones        map[string]Tone
	generating   map[string]bool
	analyzing    map[string]bool
	tuning       map[string]bool
	copied       map[string]bool
}

// NewCache creates an empty artifact cache.
func NewCache(completer Completer, clipboard Clipboard, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		completer:    completer,
		clipboard:    clipboard,
		logger:       logger,
		descriptions: make(map[string]string),
		insights:     make(map[string]string),
		tones:        make(map[string]Tone),
		generating:   make(map[string]bool),
		analyzing:    make(map[string]bool),
		tuning:       make(map[string]bool),
		copied:       make(map[string]bool),
	}
}

// ToggleDescription hides an existing description, or generates one if
// absent. Returns the description now shown and whether one is present.
func (c *Cache) ToggleDescription(ctx context.Context, e entry.Entry) (string, bool) {
	c.mu.Lock()
	if _, ok := c.descriptions[e.ID]; ok {
		delete(c.descriptions, e.ID)
		c.mu.Unlock()
		return "", false
	}
	c.mu.Unlock()

	return c.GenerateDescription(ctx, e), true
}

// GenerateDescription calls the provider and stores the result, replacing
// any prior description. On failure the stored artifact is a literal
// fallback message; the generating marker is cleared in both outcomes.
func (c *Cache) GenerateDescription(ctx context.Context, e entry.Entry) string {
	c.mu.Lock()
	c.generating[e.ID] = true
	c.mu.Unlock()

	text, err := c.completer.Complete(ctx, descriptionPrompt(e))
	if err != nil || text == "" {
		if err != nil {
			c.logger.Warn("description generation failed", "entry", e.ID, "error", err)
		}
		text = fallbackDescription
	}

	c.mu.Lock()
	c.descriptions[e.ID] = text
	delete(c.generating, e.ID)
	c.mu.Unlock()
	return text
}

// ToggleInsight hides an existing insight, or analyzes one if absent.
func (c *Cache) ToggleInsight(ctx context.Context, e entry.Entry) (string, bool) {
	c.mu.Lock()
	if _, ok := c.insights[e.ID]; ok {
		delete(c.insights, e.ID)
		c.mu.Unlock()
		return "", false
	}
	c.mu.Unlock()

	return c.AnalyzeInsight(ctx, e), true
}

// AnalyzeInsight calls the provider for a character-trait analysis drawn
// from the observations and reflections fields only.
func (c *Cache) AnalyzeInsight(ctx context.Context, e entry.Entry) string {
	c.mu.Lock()
	c.analyzing[e.ID] = true
	c.mu.Unlock()

	text, err := c.completer.Complete(ctx, insightPrompt(e))
	if err != nil || text == "" {
		if err != nil {
			c.logger.Warn("insight analysis failed", "entry", e.ID, "error", err)
		}
		text = fallbackInsight
	}

	c.mu.Lock()
	c.insights[e.ID] = text
	delete(c.analyzing, e.ID)
	c.mu.Unlock()
	return text
}

// SetTone records the selected tone for an entry. Pure bookkeeping; it
// never triggers generation. An empty tone clears the selection.
func (c *Cache) SetTone(entryID string, tone Tone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tone == "" {
		delete(c.tones, entryID)
		return
	}
	c.tones[entryID] = tone
}

// TuneTone rewrites the current description in the selected tone. The
// rewrite replaces the stored description irreversibly. Requires both a
// selected tone and an existing description.
func (c *Cache) TuneTone(ctx context.Context, e entry.Entry) (string, error) {
	c.mu.Lock()
	tone, hasTone := c.tones[e.ID]
	current, hasDescription := c.descriptions[e.ID]
	if !hasTone {
		c.mu.Unlock()
		return "", ErrToneNotSelected
	}
	if !hasDescription {
		c.mu.Unlock()
		return "", ErrNoDescription
	}
	c.tuning[e.ID] = true
	c.mu.Unlock()

	text, err := c.completer.Complete(ctx, tunePrompt(current, tone))
	if err != nil || text == "" {
		if err != nil {
			c.logger.Warn("tone tuning failed", "entry", e.ID, "tone", string(tone), "error", err)
		}
		text = fallbackTune
	}

	c.mu.Lock()
	c.descriptions[e.ID] = text
	delete(c.tuning, e.ID)
	c.mu.Unlock()
	return text, nil
}

// CopyToClipboard writes text to the platform clipboard and sets the
// transient copied marker. Callers are expected to ClearCopied after a
// short delay; the marker is cosmetic feedback only.
func (c *Cache) CopyToClipboard(entryID, text string) error {
	if err := c.clipboard.WriteAll(text); err != nil {
		return err
	}
	c.mu.Lock()
	c.copied[entryID] = true
	c.mu.Unlock()
	return nil
}

// ClearCopied resets the copied marker for an entry.
func (c *Cache) ClearCopied(entryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.copied, entryID)
}

// Description returns the cached description, if present.
func (c *Cache) Description(entryID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.descriptions[entryID]
	return text, ok
}

// Insight returns the cached insight, if present.
func (c *Cache) Insight(entryID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.insights[entryID]
	return text, ok
}

// ToneFor returns the selected tone, if any.
func (c *Cache) ToneFor(entryID string) (Tone, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tone, ok := c.tones[entryID]
	return tone, ok
}

// Get returns the full artifact record for an entry.
func (c *Cache) Get(entryID string) Artifacts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Artifacts{
		Description: c.descriptions[entryID],
		Insight:     c.insights[entryID],
		Tone:        c.tones[entryID],
		Status: Status{
			Generating: c.generating[entryID],
			Analyzing:  c.analyzing[entryID],
			Tuning:     c.tuning[entryID],
			Copied:     c.copied[entryID],
		},
	}
}

// Forget drops every artifact and marker for one entry. Called when an
// entry is purged.
func (c *Cache) Forget(entryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.descriptions, entryID)
	delete(c.insights, entryID)
	delete(c.tones, entryID)
	delete(c.generating, entryID)
	delete(c.analyzing, entryID)
	delete(c.tuning, entryID)
	delete(c.copied, entryID)
}

// Clear drops all artifacts for all entries. Called on sign-out.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptions = make(map[string]string)
	c.insights = make(map[string]string)
	c.tones = make(map[string]Tone)
	c.generating = make(map[string]bool)
	c.analyzing = make(map[string]bool)
	c.tuning = make(map[string]bool)
	c.copied = make(map[string]bool)
}
