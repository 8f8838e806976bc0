package api

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/jamscope/core"
)

// JSON shapes for the Monte Carlo endpoint. Distributions are tagged unions:
// {"dist": "constant", "value": 40} | {"dist": "uniform", "min": ..., "max": ...}
// | {"dist": "normal", "mean": ..., "stddev": ...}.
type monteCarloRequestJSON struct {
	Transmitter *actorJSON      `json:"transmitter"`
	Receiver    *receiverJSON   `json:"receiver"`
	Jammer      *jammerDistJSON `json:"jammer"`
	ThresholdDB *float64        `json:"threshold_db"`
	Trials      int             `json:"trials"`
	Seed        int64           `json:"seed"`
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

type jammerDistJSON struct {
	PowerDBm    *distJSON `json:"power_dbm"`
	GainDBi     *distJSON `json:"gain_dbi"`
	PosX        *distJSON `json:"pos_x"`
	PosY        *distJSON `json:"pos_y"`
	FrequencyHz float64   `json:"frequency_hz"`
}

type distJSON struct {
	Dist   string  `json:"dist"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

func decodeMonteCarloRequest(r io.Reader) (*core.MonteCarloModel, error) {
	var payload monteCarloRequestJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode monte carlo request: %w", err)
	}

	if payload.Transmitter == nil {
		return nil, fmt.Errorf("%w: transmitter is required", core.ErrInvalidScenario)
	}
	if payload.Receiver == nil {
		return nil, fmt.Errorf("%w: receiver is required", core.ErrInvalidScenario)
	}
	if payload.Jammer == nil {
		return nil, fmt.Errorf("%w: jammer is required", core.ErrInvalidScenario)
	}
	if payload.ThresholdDB == nil {
		return nil, fmt.Errorf("%w: threshold_db is required", core.ErrInvalidScenario)
	}

	jammer := core.JammerDistribution{FrequencyHz: payload.Jammer.FrequencyHz}
	var err error
	if jammer.PowerDBm, err = distFromJSON("power_dbm", payload.Jammer.PowerDBm); err != nil {
		return nil, err
	}
	if jammer.PosX, err = distFromJSON("pos_x", payload.Jammer.PosX); err != nil {
		return nil, err
	}
	if jammer.PosY, err = distFromJSON("pos_y", payload.Jammer.PosY); err != nil {
		return nil, err
	}
	if payload.Jammer.GainDBi != nil {
		if jammer.GainDBi, err = distFromJSON("gain_dbi", payload.Jammer.GainDBi); err != nil {
			return nil, err
		}
	}

	return &core.MonteCarloModel{
		Transmitter: core.Actor{
			Name:        payload.Transmitter.Name,
			Position:    core.Point{X: payload.Transmitter.Position.X, Y: payload.Transmitter.Position.Y},
			PowerDBm:    payload.Transmitter.PowerDBm,
			GainDBi:     payload.Transmitter.GainDBi,
			FrequencyHz: payload.Transmitter.FrequencyHz,
		},
		Receiver: core.Receiver{
			Name:           payload.Receiver.Name,
			Position:       core.Point{X: payload.Receiver.Position.X, Y: payload.Receiver.Position.Y},
			GainDBi:        payload.Receiver.GainDBi,
			SensitivityDBm: payload.Receiver.SensitivityDBm,
		},
		Jammer:      jammer,
		ThresholdDB: *payload.ThresholdDB,
		Trials:      payload.Trials,
		Seed:        payload.Seed,
	}, nil
}

func distFromJSON(field string, d *distJSON) (core.Dist, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: jammer %s distribution is required", core.ErrInvalidScenario, field)
	}
	switch d.Dist {
	case "constant":
		return core.Constant(d.Value), nil
	case "uniform":
		if d.Max < d.Min {
			return nil, fmt.Errorf("%w: jammer %s uniform bounds inverted (min %v > max %v)", core.ErrInvalidScenario, field, d.Min, d.Max)
		}
		return core.Uniform{Min: d.Min, Max: d.Max}, nil
	case "normal":
		if d.StdDev < 0 {
			return nil, fmt.Errorf("%w: jammer %s stddev must be non-negative, got %v", core.ErrInvalidScenario, field, d.StdDev)
		}
		return core.Normal{Mean: d.Mean, StdDev: d.StdDev}, nil
	default:
		return nil, fmt.Errorf("%w: jammer %s has unknown distribution %q", core.ErrInvalidScenario, field, d.Dist)
	}
}
