package artifact

// Tone is an enumerated rewrite tone for generated descriptions.
type Tone string

const (
	ToneConfident    Tone = "confident"
	ToneHumble       Tone = "humble"
	ToneEmotional    Tone = "emotional"
	ToneProfessional Tone = "professional"
)

// Tones lists every selectable tone.
func Tones() []Tone {
	return []Tone{ToneConfident, ToneHumble, ToneEmotional, ToneProfessional}
}

// ParseTone validates a tone value. The empty string is valid and means
// "no tone selected".
func ParseTone(s string) (Tone, error) {
	if s == "" {
		return "", nil
	}
	for _, t := range Tones() {
		if Tone(s) == t {
			return t, nil
		}
	}
	return "", ErrUnknownTone
}

// Status reports the advisory per-entry markers. They exist so callers can
// disable controls while a request is in flight; they are not a mutex.
type Status struct {
	Generating bool `json:"generating"`
	Analyzing  bool `json:"analyzing"`
	Tuning     bool `json:"tuning"`
	Copied     bool `json:"copied"`
}

// Artifacts is the ephemeral derived state for one entry. Absent fields
// mean "not generated".
type Artifacts struct {
	Description string `json:"description,omitempty"`
	Insight     string `json:"insight,omitempty"`
	Tone        Tone   `json:"tone,omitempty"`
	Status      Status `json:"status"`
}
