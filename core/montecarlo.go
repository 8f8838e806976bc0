package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Dist is a scalar sampling distribution for uncertain jammer parameters.
type Dist interface {
	Sample(rng *rand.Rand) float64
}

// Constant is a degenerate distribution that always yields the same value.
type Constant float64

func (c Constant) Sample(*rand.Rand) float64 { return float64(c) }

// Uniform samples uniformly from [Min, Max).
type Uniform struct {
	Min, Max float64
}

func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Min + rng.Float64()*(u.Max-u.Min)
}

// Normal samples from a Gaussian with the given mean and standard deviation.
type Normal struct {
	Mean, StdDev float64
}

func (n Normal) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*n.StdDev + n.Mean
}

// JammerDistribution describes the uncertain jammer: power and position are
// drawn per trial, the frequency stays deterministic.
type JammerDistribution struct {
	PowerDBm    Dist
	GainDBi     Dist
	PosX        Dist
	PosY        Dist
	FrequencyHz float64
}

// MonteCarloModel repeatedly evaluates the scenario with a jammer drawn from
// JammerDistribution, estimating how often jamming succeeds when the jammer's
// parameters are only known as distributions.
type MonteCarloModel struct {
	Transmitter Actor
	Receiver    Receiver
	Jammer      JammerDistribution
	ThresholdDB float64
	Trials      int

	// Seed makes runs reproducible. The zero value is a valid seed.
	Seed int64
}

// MonteCarloResult summarises a completed run.
type MonteCarloResult struct {
	Trials             int       `json:"Trials"`
	JSRatiosDB         []float64 `json:"JSRatiosDB,omitempty"`
	JammingSuccessRate float64   `json:"JammingSuccessRate"`
	MeanJSRatioDB      float64   `json:"MeanJSRatioDB"`
	MinJSRatioDB       float64   `json:"MinJSRatioDB"`
	MaxJSRatioDB       float64   `json:"MaxJSRatioDB"`
}

// Run executes all trials. Each trial is an independent EvaluateScenario
// call over a freshly drawn jammer, so a trial whose draw violates the input
// contract (e.g. a sampled non-finite power) fails the whole run rather than
// being silently skewed out of the statistics.
func (m *MonteCarloModel) Run() (*MonteCarloResult, error) {
	if m.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidScenario, m.Trials)
	}
	if m.Jammer.PowerDBm == nil || m.Jammer.PosX == nil || m.Jammer.PosY == nil {
		return nil, fmt.Errorf("%w: jammer power and position distributions are required", ErrInvalidScenario)
	}

	rng := rand.New(rand.NewSource(m.Seed))

	gain := m.Jammer.GainDBi
	if gain == nil {
		gain = Constant(0)
	}

	ratios := make([]float64, 0, m.Trials)
	successes := 0
	sum := 0.0
	min := math.Inf(1)
	max := math.Inf(-1)

	for i := 0; i < m.Trials; i++ {
		jammer := Actor{
			Name: "jammer",
			Position: Point{
				X: m.Jammer.PosX.Sample(rng),
				Y: m.Jammer.PosY.Sample(rng),
			},
			PowerDBm:    m.Jammer.PowerDBm.Sample(rng),
			GainDBi:     gain.Sample(rng),
			FrequencyHz: m.Jammer.FrequencyHz,
		}

		res, err := EvaluateScenario(Scenario{
			Transmitter: m.Transmitter,
			Jammer:      jammer,
			Receiver:    m.Receiver,
			ThresholdDB: m.ThresholdDB,
		})
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}

		ratios = append(ratios, res.JSRatioDB)
		sum += res.JSRatioDB
		if res.JSRatioDB < min {
			min = res.JSRatioDB
		}
		if res.JSRatioDB > max {
			max = res.JSRatioDB
		}
		if res.JammingSuccessful {
			successes++
		}
	}

	return &MonteCarloResult{
		Trials:             m.Trials,
		JSRatiosDB:         ratios,
		JammingSuccessRate: float64(successes) / float64(m.Trials),
		MeanJSRatioDB:      sum / float64(m.Trials),
		MinJSRatioDB:       min,
		MaxJSRatioDB:       max,
	}, nil
}
