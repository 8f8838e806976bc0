package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is a package-level sentinel for actor fields that are
	// non-finite or outside their domain (e.g. zero or negative frequency).
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidScenario is a package-level sentinel for structurally broken
	// scenario descriptions (missing actors, non-finite threshold).
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrUndefinedRatio is reserved for ratio computations over exactly zero
	// linear power. The engine works in the log (dBm) domain throughout, so
	// this condition is structurally unreachable; the sentinel exists to make
	// the contract explicit for callers that convert to linear units.
	ErrUndefinedRatio = errors.New("undefined ratio")
)

// Actor is an RF emitter in the scenario plane: the legitimate transmitter
// and the jammer share this shape. All powers are dBm, gains dBi, the
// frequency Hz, and positions metres.
type Actor struct {
	Name        string  `json:"Name,omitempty"`
	Position    Point   `json:"Position"`
	PowerDBm    float64 `json:"PowerDBm"`
	GainDBi     float64 `json:"GainDBi,omitempty"`
	FrequencyHz float64 `json:"FrequencyHz"`
}

// Receiver is the victim terminal. It does not transmit; it carries an
// antenna gain applied to both incoming links and a sensitivity floor below
// which the signal cannot be demodulated at all.
type Receiver struct {
	Name           string  `json:"Name,omitempty"`
	Position       Point   `json:"Position"`
	GainDBi        float64 `json:"GainDBi,omitempty"`
	SensitivityDBm float64 `json:"SensitivityDBm,omitempty"`
}

// Validate checks the actor's fields against the input contract: finite
// position, power and gain, and a strictly positive finite frequency.
func (a Actor) Validate() error {
	if !a.Position.IsFinite() {
		return fmt.Errorf("%w: %s position must be finite", ErrInvalidInput, a.label())
	}
	if !isFinite(a.PowerDBm) {
		return fmt.Errorf("%w: %s power must be finite, got %v dBm", ErrInvalidInput, a.label(), a.PowerDBm)
	}
	if !isFinite(a.GainDBi) {
		return fmt.Errorf("%w: %s gain must be finite, got %v dBi", ErrInvalidInput, a.label(), a.GainDBi)
	}
	if a.FrequencyHz <= 0 || !isFinite(a.FrequencyHz) {
		return fmt.Errorf("%w: %s frequency must be positive and finite, got %v Hz", ErrInvalidInput, a.label(), a.FrequencyHz)
	}
	return nil
}

// Validate checks the receiver's fields: finite position, gain and
// sensitivity.
func (r Receiver) Validate() error {
	if !r.Position.IsFinite() {
		return fmt.Errorf("%w: %s position must be finite", ErrInvalidInput, r.label())
	}
	if !isFinite(r.GainDBi) {
		return fmt.Errorf("%w: %s gain must be finite, got %v dBi", ErrInvalidInput, r.label(), r.GainDBi)
	}
	if !isFinite(r.SensitivityDBm) {
		return fmt.Errorf("%w: %s sensitivity must be finite, got %v dBm", ErrInvalidInput, r.label(), r.SensitivityDBm)
	}
	return nil
}

func (a Actor) label() string {
	if a.Name != "" {
		return a.Name
	}
	return "actor"
}

func (r Receiver) label() string {
	if r.Name != "" {
		return r.Name
	}
	return "receiver"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
