// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// internal JSON shapes – kept unexported so we're free to evolve them.
type scenarioJSON struct {
	Transmitter *actorJSON    `json:"transmitter"`
	Jammer      *actorJSON    `json:"jammer"`
	Receiver    *receiverJSON `json:"receiver"`
	ThresholdDB *float64      `json:"threshold_db"`
}

type actorJSON struct {
	Name        string    `json:"name"`
	Position    pointJSON `json:"position"`
	PowerDBm    float64   `json:"power_dbm"`
	GainDBi     float64   `json:"gain_dbi"`
	FrequencyHz float64   `json:"frequency_hz"`
}

type receiverJSON struct {
	Name           string    `json:"name"`
	Position       pointJSON `json:"position"`
	GainDBi        float64   `json:"gain_dbi"`
	SensitivityDBm float64   `json:"sensitivity_dbm"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LoadScenario reads a JSON scenario description from r and returns a
// validated Scenario. It fails on JSON/structural errors and on field
// values that violate the input contract, so callers downstream of a
// successful load never feed untyped or out-of-domain values into the
// arithmetic.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	if payload.Transmitter == nil {
		return nil, fmt.Errorf("LoadScenario: %w: transmitter is required", ErrInvalidScenario)
	}
	if payload.Jammer == nil {
		return nil, fmt.Errorf("LoadScenario: %w: jammer is required", ErrInvalidScenario)
	}
	if payload.Receiver == nil {
		return nil, fmt.Errorf("LoadScenario: %w: receiver is required", ErrInvalidScenario)
	}
	if payload.ThresholdDB == nil {
		return nil, fmt.Errorf("LoadScenario: %w: threshold_db is required", ErrInvalidScenario)
	}

	s := Scenario{
		Transmitter: actorFromJSON(payload.Transmitter),
		Jammer:      actorFromJSON(payload.Jammer),
		Receiver: Receiver{
			Name:           payload.Receiver.Name,
			Position:       Point{X: payload.Receiver.Position.X, Y: payload.Receiver.Position.Y},
			GainDBi:        payload.Receiver.GainDBi,
			SensitivityDBm: payload.Receiver.SensitivityDBm,
		},
		ThresholdDB: *payload.ThresholdDB,
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}
	return &s, nil
}

func actorFromJSON(a *actorJSON) Actor {
	return Actor{
		Name:        a.Name,
		Position:    Point{X: a.Position.X, Y: a.Position.Y},
		PowerDBm:    a.PowerDBm,
		GainDBi:     a.GainDBi,
		FrequencyHz: a.FrequencyHz,
	}
}
