package core

import (
	"errors"
	"math"
	"testing"
)

func TestFreeSpacePathLossKnownValue(t *testing.T) {
	// 1 km at 1000 MHz: 20·log10(1) + 20·log10(1000) + 32.44 = 92.44 dB.
	got, err := FreeSpacePathLossDB(1000, 1e9)
	if err != nil {
		t.Fatalf("FreeSpacePathLossDB: %v", err)
	}
	if math.Abs(got-92.44) > 1e-9 {
		t.Errorf("FSPL = %v dB, want 92.44", got)
	}
}

func TestFreeSpacePathLossRejectsBadFrequency(t *testing.T) {
	for _, f := range []float64{0, -1e9, math.NaN(), math.Inf(1)} {
		if _, err := FreeSpacePathLossDB(1000, f); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("frequency %v: err = %v, want ErrInvalidInput", f, err)
		}
	}
}

func TestFreeSpacePathLossRejectsBadDistance(t *testing.T) {
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := FreeSpacePathLossDB(d, 1e9); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("distance %v: err = %v, want ErrInvalidInput", d, err)
		}
	}
}

// TestFreeSpacePathLossZeroDistanceClamped verifies the degenerate-geometry
// floor: zero distance is a valid input and behaves like the 1 m floor, not
// like log(0).
func TestFreeSpacePathLossZeroDistanceClamped(t *testing.T) {
	atZero, err := FreeSpacePathLossDB(0, 1e9)
	if err != nil {
		t.Fatalf("FreeSpacePathLossDB(0): %v", err)
	}
	if math.IsNaN(atZero) || math.IsInf(atZero, 0) {
		t.Fatalf("FSPL at zero distance is %v, want finite", atZero)
	}
	atFloor, err := FreeSpacePathLossDB(MinPropagationDistanceM, 1e9)
	if err != nil {
		t.Fatalf("FreeSpacePathLossDB(floor): %v", err)
	}
	if atZero != atFloor {
		t.Errorf("FSPL(0) = %v, want FSPL(floor) = %v", atZero, atFloor)
	}
}

func TestReceivedPowerMonotonicInDistance(t *testing.T) {
	prev := math.Inf(1)
	for _, d := range []float64{0, 1, 10, 100, 1000, 10000, 1e6} {
		pr, err := ReceivedPowerDBm(30, 0, 0, d, 1e9)
		if err != nil {
			t.Fatalf("ReceivedPowerDBm(d=%v): %v", d, err)
		}
		if pr > prev {
			t.Errorf("received power increased with distance: %v dBm at %v m (prev %v)", pr, d, prev)
		}
		prev = pr
	}
}

func TestReceivedPowerMonotonicInPowerAndGain(t *testing.T) {
	base, err := ReceivedPowerDBm(30, 0, 0, 1000, 1e9)
	if err != nil {
		t.Fatalf("ReceivedPowerDBm: %v", err)
	}

	higherPower, _ := ReceivedPowerDBm(33, 0, 0, 1000, 1e9)
	if higherPower <= base {
		t.Errorf("raising power did not raise received power: %v -> %v", base, higherPower)
	}
	// A dB of gain is worth exactly a dB of received power.
	if math.Abs((higherPower-base)-3) > 1e-9 {
		t.Errorf("power delta %v dB, want 3", higherPower-base)
	}

	higherGain, _ := ReceivedPowerDBm(30, 6, 0, 1000, 1e9)
	if higherGain <= base {
		t.Errorf("raising tx gain did not raise received power: %v -> %v", base, higherGain)
	}
	rxGain, _ := ReceivedPowerDBm(30, 0, 6, 1000, 1e9)
	if rxGain != higherGain {
		t.Errorf("tx and rx gain contribute asymmetrically: %v vs %v", higherGain, rxGain)
	}
}

func TestReceivedPowerRejectsNonFiniteInputs(t *testing.T) {
	if _, err := ReceivedPowerDBm(math.NaN(), 0, 0, 1000, 1e9); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NaN power: err = %v, want ErrInvalidInput", err)
	}
	if _, err := ReceivedPowerDBm(30, math.Inf(1), 0, 1000, 1e9); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("infinite gain: err = %v, want ErrInvalidInput", err)
	}
	if _, err := ReceivedPowerDBm(30, 0, 0, 1000, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero frequency: err = %v, want ErrInvalidInput", err)
	}
}
