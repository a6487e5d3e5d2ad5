package artifact_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/domain/artifact"
	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

// fakeCompleter records every prompt it receives and returns canned output.
type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func sampleEntry() entry.Entry {
	return entry.Entry{
		ID:           "e1",
		UserID:       "u1",
		Physician:    "Dr. A",
		Specialty:    "Cardiology",
		Date:         "2024-01-01",
		Hours:        3,
		Observations: "Observed rounds.",
		Reflections:  "Learned a lot.",
	}
}

func TestCache_ToggleDescription_GeneratesThenHides(t *testing.T) {
	completer := &fakeCompleter{response: "A polished description."}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	text, present := cache.ToggleDescription(context.Background(), e)
	require.True(t, present)
	require.Equal(t, "A polished description.", text)
	require.Len(t, completer.prompts, 1)

	// Hiding is a pure cache removal; no provider call happens.
	_, present = cache.ToggleDescription(context.Background(), e)
	require.False(t, present)
	require.Len(t, completer.prompts, 1)

	_, ok := cache.Description(e.ID)
	require.False(t, ok)

	// Toggling again regenerates.
	_, present = cache.ToggleDescription(context.Background(), e)
	require.True(t, present)
	require.Len(t, completer.prompts, 2)
}

func TestCache_GenerateDescription_FailureStoresFallback(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("provider down")}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	text := cache.GenerateDescription(context.Background(), e)
	require.Equal(t, "Failed to generate description.", text)

	stored, ok := cache.Description(e.ID)
	require.True(t, ok)
	require.Equal(t, "Failed to generate description.", stored)
	require.False(t, cache.Get(e.ID).Status.Generating, "marker must clear on failure")
}

func TestCache_GenerateDescription_EmptyResponseStoresFallback(t *testing.T) {
	completer := &fakeCompleter{response: ""}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)

	text := cache.GenerateDescription(context.Background(), sampleEntry())
	require.Equal(t, "Failed to generate description.", text)
}

func TestCache_GenerateDescription_PromptCarriesEntryFields(t *testing.T) {
	completer := &fakeCompleter{response: "ok"}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	cache.GenerateDescription(context.Background(), e)

	require.Len(t, completer.prompts, 1)
	prompt := completer.prompts[0]
	for _, want := range []string{"Dr. A", "Cardiology", "2024-01-01", "3", "Observed rounds.", "Learned a lot."} {
		require.Contains(t, prompt, want)
	}
	require.Contains(t, prompt, "700-character")
}

func TestCache_ToggleInsight_AnalyzesThenHides(t *testing.T) {
	completer := &fakeCompleter{response: "Shows empathy and curiosity."}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	text, present := cache.ToggleInsight(context.Background(), e)
	require.True(t, present)
	require.Equal(t, "Shows empathy and curiosity.", text)

	_, present = cache.ToggleInsight(context.Background(), e)
	require.False(t, present)
	require.Len(t, completer.prompts, 1)
}

func TestCache_AnalyzeInsight_FailureStoresFallback(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("provider down")}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	text := cache.AnalyzeInsight(context.Background(), e)
	require.Equal(t, "Insight analysis failed.", text)
	require.False(t, cache.Get(e.ID).Status.Analyzing)
}

func TestCache_InsightPromptOmitsIdentityFields(t *testing.T) {
	completer := &fakeCompleter{response: "ok"}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	cache.AnalyzeInsight(context.Background(), e)

	prompt := completer.prompts[0]
	require.Contains(t, prompt, "Observed rounds.")
	require.Contains(t, prompt, "Learned a lot.")
	require.NotContains(t, prompt, "Dr. A")
	require.NotContains(t, prompt, "Cardiology")
}

func TestCache_TuneTone_RequiresToneAndDescription(t *testing.T) {
	completer := &fakeCompleter{response: "Tuned."}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	_, err := cache.TuneTone(context.Background(), e)
	require.ErrorIs(t, err, artifact.ErrToneNotSelected)

	cache.SetTone(e.ID, artifact.ToneConfident)
	_, err = cache.TuneTone(context.Background(), e)
	require.ErrorIs(t, err, artifact.ErrNoDescription)

	require.Empty(t, completer.prompts, "preconditions fail before any provider call")
}

func TestCache_TuneTone_ReplacesDescription(t *testing.T) {
	completer := &fakeCompleter{response: "Original description."}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	cache.GenerateDescription(context.Background(), e)
	cache.SetTone(e.ID, artifact.ToneProfessional)

	completer.response = "A professional rendering."
	tuned, err := cache.TuneTone(context.Background(), e)
	require.NoError(t, err)
	require.Equal(t, "A professional rendering.", tuned)

	stored, ok := cache.Description(e.ID)
	require.True(t, ok)
	require.Equal(t, "A professional rendering.", stored)

	require.Len(t, completer.prompts, 2)
	require.Contains(t, completer.prompts[1], "Original description.")
	require.Contains(t, strings.ToLower(completer.prompts[1]), "professional")
}

func TestCache_TuneTone_FailureStoresFallback(t *testing.T) {
	completer := &fakeCompleter{response: "Original description."}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	cache.GenerateDescription(context.Background(), e)
	cache.SetTone(e.ID, artifact.ToneHumble)

	completer.err = errors.New("provider down")
	tuned, err := cache.TuneTone(context.Background(), e)
	require.NoError(t, err, "provider failure is absorbed, not surfaced")
	require.Equal(t, "Failed to tune tone.", tuned)

	stored, _ := cache.Description(e.ID)
	require.Equal(t, "Failed to tune tone.", stored, "the prior description is gone")
	require.False(t, cache.Get(e.ID).Status.Tuning)
}

func TestCache_SetTone_EmptyClearsSelection(t *testing.T) {
	cache := artifact.NewCache(&fakeCompleter{}, &fakeClipboard{}, nil)

	cache.SetTone("e1", artifact.ToneEmotional)
	tone, ok := cache.ToneFor("e1")
	require.True(t, ok)
	require.Equal(t, artifact.ToneEmotional, tone)

	cache.SetTone("e1", "")
	_, ok = cache.ToneFor("e1")
	require.False(t, ok)
}

func TestCache_CopyToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	cache := artifact.NewCache(&fakeCompleter{}, clip, nil)

	require.NoError(t, cache.CopyToClipboard("e1", "some text"))
	require.Equal(t, "some text", clip.text)
	require.True(t, cache.Get("e1").Status.Copied)

	cache.ClearCopied("e1")
	require.False(t, cache.Get("e1").Status.Copied)
}

func TestCache_CopyToClipboard_WriteFailure(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no clipboard")}
	cache := artifact.NewCache(&fakeCompleter{}, clip, nil)

	require.Error(t, cache.CopyToClipboard("e1", "some text"))
	require.False(t, cache.Get("e1").Status.Copied)
}

func TestCache_ForgetDropsOneEntry(t *testing.T) {
	completer := &fakeCompleter{response: "ok"}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e1 := sampleEntry()
	e2 := sampleEntry()
	e2.ID = "e2"

	cache.GenerateDescription(context.Background(), e1)
	cache.GenerateDescription(context.Background(), e2)
	cache.SetTone(e1.ID, artifact.ToneConfident)

	cache.Forget(e1.ID)

	_, ok := cache.Description(e1.ID)
	require.False(t, ok)
	_, ok = cache.ToneFor(e1.ID)
	require.False(t, ok)
	_, ok = cache.Description(e2.ID)
	require.True(t, ok)
}

func TestCache_ClearDropsEverything(t *testing.T) {
	completer := &fakeCompleter{response: "ok"}
	cache := artifact.NewCache(completer, &fakeClipboard{}, nil)
	e := sampleEntry()

	cache.GenerateDescription(context.Background(), e)
	cache.AnalyzeInsight(context.Background(), e)
	cache.SetTone(e.ID, artifact.ToneConfident)

	cache.Clear()

	require.Equal(t, artifact.Artifacts{}, cache.Get(e.ID))
}

func TestParseTone(t *testing.T) {
	for _, name := range []string{"confident", "humble", "emotional", "professional"} {
		tone, err := artifact.ParseTone(name)
		require.NoError(t, err)
		require.Equal(t, artifact.Tone(name), tone)
	}

	tone, err := artifact.ParseTone("")
	require.NoError(t, err)
	require.Equal(t, artifact.Tone(""), tone)

	_, err = artifact.ParseTone("sarcastic")
	require.ErrorIs(t, err, artifact.ErrUnknownTone)
}
