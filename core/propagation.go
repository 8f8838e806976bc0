package core

import (
	"fmt"
	"math"
)

// MinPropagationDistanceM is the floor applied to link distances before the
// logarithmic path-loss term. Co-located actors are a legitimate training
// input (the jammer parked on top of the receiver), so a zero distance is
// clamped here rather than rejected: the result is the strongest received
// power attainable for the source's power and gains, never a log-of-zero.
const MinPropagationDistanceM = 1.0

// FreeSpacePathLossDB returns the free-space path loss in dB for a link of
// the given length and carrier frequency:
//
//	FSPL = 20·log10(d_km) + 20·log10(f_MHz) + 32.44
//
// Distances below MinPropagationDistanceM are clamped to the floor. The
// absolute calibration is approximate; what matters for the J/S verdict is
// that the same model is applied to both links.
func FreeSpacePathLossDB(distanceM, frequencyHz float64) (float64, error) {
	if !isFinite(distanceM) || distanceM < 0 {
		return 0, fmt.Errorf("%w: distance must be finite and non-negative, got %v m", ErrInvalidInput, distanceM)
	}
	if frequencyHz <= 0 || !isFinite(frequencyHz) {
		return 0, fmt.Errorf("%w: frequency must be positive and finite, got %v Hz", ErrInvalidInput, frequencyHz)
	}

	if distanceM < MinPropagationDistanceM {
		distanceM = MinPropagationDistanceM
	}

	distanceKm := distanceM / 1000.0
	frequencyMHz := frequencyHz / 1e6
	return 20*math.Log10(distanceKm) + 20*math.Log10(frequencyMHz) + 32.44, nil
}

// ReceivedPowerDBm computes the power arriving at a receiver over a
// free-space link: transmit power plus both antenna gains, minus path loss.
// All inputs must be finite and the frequency strictly positive.
func ReceivedPowerDBm(powerDBm, txGainDBi, rxGainDBi, distanceM, frequencyHz float64) (float64, error) {
	if !isFinite(powerDBm) {
		return 0, fmt.Errorf("%w: source power must be finite, got %v dBm", ErrInvalidInput, powerDBm)
	}
	if !isFinite(txGainDBi) || !isFinite(rxGainDBi) {
		return 0, fmt.Errorf("%w: antenna gains must be finite, got tx=%v rx=%v dBi", ErrInvalidInput, txGainDBi, rxGainDBi)
	}

	fspl, err := FreeSpacePathLossDB(distanceM, frequencyHz)
	if err != nil {
		return 0, err
	}
	return powerDBm + txGainDBi + rxGainDBi - fspl, nil
}
