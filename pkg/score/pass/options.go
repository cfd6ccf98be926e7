package pass

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Default engraving and playback values shared by CLI, API, and pipeline.
const (
	// DefaultUnit is the base drawing unit in logical pixels. Fixed advances
	// and event spacing scale with it.
	DefaultUnit = 9.0

	// DefaultSpacingLinear is the linear factor of the duration-based event
	// spacing.
	DefaultSpacingLinear = 0.25

	// DefaultSpacingNonLinear is the exponent of the duration-based event
	// spacing. Values below 1 compress long notes.
	DefaultSpacingNonLinear = 0.6

	// DefaultTempo is the playback tempo in quarter notes per minute.
	DefaultTempo = 120.0

	// DefaultPPQ is the MIDI resolution in pulses per quarter note.
	DefaultPPQ = 480

	// DefaultCastOffUnit is the measure length, in quarter notes, used when
	// casting unmeasured mensural content into measures.
	DefaultCastOffUnit = 8.0
)

// Options configures the pass sequence. The struct supports JSON
// serialization for API requests.
type Options struct {
	// Layout options
	Unit             float64 `json:"unit,omitempty"`
	SpacingLinear    float64 `json:"spacing_linear,omitempty"`
	SpacingNonLinear float64 `json:"spacing_non_linear,omitempty"`

	// SkipCancellation disables key-signature cancellation naturals
	// (default: false = draw them).
	SkipCancellation bool `json:"skip_cancellation,omitempty"`

	// Playback options
	Tempo float64 `json:"tempo,omitempty"`
	PPQ   int     `json:"ppq,omitempty"`

	// Mensural options
	CastOffUnit float64 `json:"cast_off_unit,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks field ranges and applies defaults. This
// method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Unit < 0 || o.SpacingLinear < 0 || o.SpacingNonLinear < 0 {
		return fmt.Errorf("spacing values must not be negative")
	}
	if o.Tempo < 0 {
		return fmt.Errorf("tempo must not be negative")
	}
	if o.PPQ < 0 {
		return fmt.Errorf("ppq must not be negative")
	}
	if o.CastOffUnit < 0 {
		return fmt.Errorf("cast_off_unit must not be negative")
	}

	if o.Unit == 0 {
		o.Unit = DefaultUnit
	}
	if o.SpacingLinear == 0 {
		o.SpacingLinear = DefaultSpacingLinear
	}
	if o.SpacingNonLinear == 0 {
		o.SpacingNonLinear = DefaultSpacingNonLinear
	}
	if o.Tempo == 0 {
		o.Tempo = DefaultTempo
	}
	if o.PPQ == 0 {
		o.PPQ = DefaultPPQ
	}
	if o.CastOffUnit == 0 {
		o.CastOffUnit = DefaultCastOffUnit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
