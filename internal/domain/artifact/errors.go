package artifact

import "errors"

var (
	// ErrUnknownTone indicates a tone outside the enumerated set.
	ErrUnknownTone = errors.New("unknown tone")
	// ErrToneNotSelected indicates tune was requested without a tone.
	ErrToneNotSelected = errors.New("no tone selected")
	// ErrNoDescription indicates tune was requested before a description exists.
	ErrNoDescription = errors.New("no description to tune")
)
