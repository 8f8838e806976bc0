package core

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func baselineMonteCarlo() MonteCarloModel {
	return MonteCarloModel{
		Transmitter: Actor{
			Position:    Point{X: 0, Y: 0},
			PowerDBm:    30,
			FrequencyHz: 1e9,
		},
		Receiver: Receiver{
			Position:       Point{X: 1000, Y: 0},
			SensitivityDBm: -90,
		},
		Jammer: JammerDistribution{
			PowerDBm:    Normal{Mean: 40, StdDev: 2},
			PosX:        Uniform{Min: 400, Max: 600},
			PosY:        Normal{Mean: 0, StdDev: 50},
			FrequencyHz: 1e9,
		},
		ThresholdDB: 10,
		Trials:      500,
		Seed:        42,
	}
}

func TestMonteCarloDeterministicUnderSeed(t *testing.T) {
	m1 := baselineMonteCarlo()
	m2 := baselineMonteCarlo()

	r1, err := m1.Run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := m2.Run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(r1.JSRatiosDB) != m1.Trials || len(r2.JSRatiosDB) != m2.Trials {
		t.Fatalf("sample counts = %d, %d; want %d", len(r1.JSRatiosDB), len(r2.JSRatiosDB), m1.Trials)
	}
	for i := range r1.JSRatiosDB {
		if r1.JSRatiosDB[i] != r2.JSRatiosDB[i] {
			t.Fatalf("trial %d differs across identically seeded runs: %v vs %v", i, r1.JSRatiosDB[i], r2.JSRatiosDB[i])
		}
	}
	if r1.JammingSuccessRate != r2.JammingSuccessRate {
		t.Errorf("success rates differ: %v vs %v", r1.JammingSuccessRate, r2.JammingSuccessRate)
	}
}

// With every distribution degenerate the run must reduce to the
// deterministic scenario result on every trial.
func TestMonteCarloConstantDistributions(t *testing.T) {
	m := baselineMonteCarlo()
	m.Jammer = JammerDistribution{
		PowerDBm:    Constant(40),
		PosX:        Constant(500),
		PosY:        Constant(0),
		FrequencyHz: 1e9,
	}
	m.Trials = 50

	res, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := 10 + 20*math.Log10(2)
	for i, ratio := range res.JSRatiosDB {
		if math.Abs(ratio-want) > 1e-9 {
			t.Fatalf("trial %d: J/S = %v, want %v", i, ratio, want)
		}
	}
	if res.JammingSuccessRate != 1 {
		t.Errorf("success rate = %v, want 1", res.JammingSuccessRate)
	}
	if math.Abs(res.MeanJSRatioDB-want) > 1e-9 {
		t.Errorf("mean = %v, want %v", res.MeanJSRatioDB, want)
	}
	if res.MinJSRatioDB != res.MaxJSRatioDB {
		t.Errorf("min %v != max %v for constant draws", res.MinJSRatioDB, res.MaxJSRatioDB)
	}
}

func TestMonteCarloStatsEnvelope(t *testing.T) {
	m := baselineMonteCarlo()
	res, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.JammingSuccessRate < 0 || res.JammingSuccessRate > 1 {
		t.Errorf("success rate %v outside [0,1]", res.JammingSuccessRate)
	}
	if res.MinJSRatioDB > res.MeanJSRatioDB || res.MeanJSRatioDB > res.MaxJSRatioDB {
		t.Errorf("min/mean/max out of order: %v / %v / %v", res.MinJSRatioDB, res.MeanJSRatioDB, res.MaxJSRatioDB)
	}
	for i, ratio := range res.JSRatiosDB {
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			t.Fatalf("trial %d produced non-finite J/S %v", i, ratio)
		}
	}
}

func TestMonteCarloRejectsBadConfig(t *testing.T) {
	m := baselineMonteCarlo()
	m.Trials = 0
	if _, err := m.Run(); !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("zero trials: err = %v, want ErrInvalidScenario", err)
	}

	m = baselineMonteCarlo()
	m.Jammer.PowerDBm = nil
	if _, err := m.Run(); !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("missing power dist: err = %v, want ErrInvalidScenario", err)
	}
}

func TestMonteCarloPropagatesInvalidDraws(t *testing.T) {
	m := baselineMonteCarlo()
	m.Jammer.FrequencyHz = 0
	if _, err := m.Run(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero jammer frequency: err = %v, want ErrInvalidInput", err)
	}
}

func TestDistSampling(t *testing.T) {
	u := Uniform{Min: 10, Max: 20}
	n := Normal{Mean: 5, StdDev: 0}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if v := u.Sample(rng); v < 10 || v >= 20 {
			t.Fatalf("Uniform sample %v outside [10,20)", v)
		}
	}
	if v := n.Sample(rng); v != 5 {
		t.Errorf("zero-stddev Normal sample = %v, want 5", v)
	}
	if v := Constant(7).Sample(rng); v != 7 {
		t.Errorf("Constant sample = %v, want 7", v)
	}
}
