package core

import (
	"fmt"
	"math"
)

// Scenario is a complete three-actor snapshot plus the J/S threshold the
// verdict is measured against. Scenarios are value objects constructed by
// the caller for each evaluation; the engine holds no state between calls.
type Scenario struct {
	Transmitter Actor    `json:"Transmitter"`
	Jammer      Actor    `json:"Jammer"`
	Receiver    Receiver `json:"Receiver"`
	ThresholdDB float64  `json:"ThresholdDB"`
}

// ScenarioResult aggregates both link computations and the jamming verdict.
// It is recomputed from scratch on every evaluation; nothing is cached.
type ScenarioResult struct {
	SignalLink  LinkResult `json:"SignalLink"`
	JammingLink LinkResult `json:"JammingLink"`

	JSRatioDB   float64 `json:"JSRatioDB"`
	ThresholdDB float64 `json:"ThresholdDB"`
	MarginDB    float64 `json:"MarginDB"`

	// JammingSuccessful is true iff JSRatioDB >= ThresholdDB.
	JammingSuccessful bool `json:"JammingSuccessful"`

	// SignalAboveSensitivity reports whether the legitimate signal arrives
	// above the receiver's sensitivity floor at all. A signal below the
	// floor cannot be received regardless of jamming.
	SignalAboveSensitivity bool `json:"SignalAboveSensitivity"`

	// CommunicationSuccessful is true when the signal is above sensitivity
	// and jamming did not succeed.
	CommunicationSuccessful bool `json:"CommunicationSuccessful"`

	Effectiveness JammingEffectiveness `json:"Effectiveness"`
}

// Validate checks the scenario's actors and threshold.
func (s Scenario) Validate() error {
	if err := s.Transmitter.Validate(); err != nil {
		return fmt.Errorf("transmitter: %w", err)
	}
	if err := s.Jammer.Validate(); err != nil {
		return fmt.Errorf("jammer: %w", err)
	}
	if err := s.Receiver.Validate(); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	if math.IsNaN(s.ThresholdDB) || math.IsInf(s.ThresholdDB, 0) {
		return fmt.Errorf("%w: threshold must be finite, got %v dB", ErrInvalidScenario, s.ThresholdDB)
	}
	return nil
}

// EvaluateScenario runs the full propagation-and-ratio calculation: one link
// per RF source into the receiver, then the J/S comparison. It is a pure
// function of its inputs; identical scenarios yield identical results and
// the inputs are never mutated. Errors surface unchanged to the caller.
func EvaluateScenario(s Scenario) (*ScenarioResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	signal, err := evaluateLink(s.Transmitter, s.Receiver)
	if err != nil {
		return nil, fmt.Errorf("signal link: %w", err)
	}
	jamming, err := evaluateLink(s.Jammer, s.Receiver)
	if err != nil {
		return nil, fmt.Errorf("jamming link: %w", err)
	}

	verdict := EvaluateJS(signal.ReceivedPowerDBm, jamming.ReceivedPowerDBm, s.ThresholdDB)
	aboveSensitivity := signal.ReceivedPowerDBm >= s.Receiver.SensitivityDBm

	return &ScenarioResult{
		SignalLink:              signal,
		JammingLink:             jamming,
		JSRatioDB:               verdict.JSRatioDB,
		ThresholdDB:             verdict.ThresholdDB,
		MarginDB:                verdict.MarginDB,
		JammingSuccessful:       verdict.JammingSuccessful,
		SignalAboveSensitivity:  aboveSensitivity,
		CommunicationSuccessful: aboveSensitivity && !verdict.JammingSuccessful,
		Effectiveness:           classifyEffectiveness(verdict),
	}, nil
}

// evaluateLink computes the propagation result for one source into the
// receiver, using the source's own power, gain and frequency.
func evaluateLink(source Actor, rx Receiver) (LinkResult, error) {
	dist := source.Position.DistanceTo(rx.Position)

	fspl, err := FreeSpacePathLossDB(dist, source.FrequencyHz)
	if err != nil {
		return LinkResult{}, err
	}
	pr, err := ReceivedPowerDBm(source.PowerDBm, source.GainDBi, rx.GainDBi, dist, source.FrequencyHz)
	if err != nil {
		return LinkResult{}, err
	}

	return LinkResult{
		DistanceM:        dist,
		PathLossDB:       fspl,
		ReceivedPowerDBm: pr,
	}, nil
}
