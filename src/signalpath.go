package v17

/*------------------------------------------------------------------
 *
 * Purpose:     Numeric back ends for the transmit signal path.
 *
 *		Everything from the symbol point onwards - pulse shaping
 *		history, carrier modulation, gain and saturation - lives
 *		behind this interface so the modulator logic is written
 *		once and the arithmetic can be either floating point or
 *		16/32 bit fixed point.  Symbol decisions are integer exact
 *		either way; only the waveform numbers differ in rounding.
 *
 *----------------------------------------------------------------*/

import (
	"math"
)

// Precision selects the arithmetic used by the signal path.
type Precision int

const (
	// FloatingPoint computes the waveform in float32.
	FloatingPoint Precision = iota
	// FixedPoint computes the waveform in 16/32 bit integers with
	// Q15 products, the way a DSP build would.
	FixedPoint
)

type signalPath interface {
	// reset zeroes the filter history and carrier phase.  Gain and
	// carrier rate survive, as they are configuration.
	reset()

	// push enters the next symbol into the shaping filter.  Called
	// exactly once per symbol boundary.
	push(pt sigPoint)

	// sample produces one passband output sample for the current
	// fractional symbol phase.  Called once per output sample.
	sample(baudPhase int) int16

	// setGain recomputes the output scaling for a power level in
	// dBm0.
	setGain(power float32)
}

func newSignalPath(precision Precision, carrierRate uint32) signalPath {
	if precision == FixedPoint {
		return &fixedPath{phaseRate: carrierRate}
	}
	return &floatPath{phaseRate: carrierRate}
}

// powerGain converts a requested level in dBm0 to the linear scaling
// applied to the shaped baseband, compensating for the filter bank gain.
// The constellation design keeps the average power roughly the same
// regardless of which bit rate is in use, so the factor is rate
// independent.
func powerGain(power float32) float64 {
	return 0.223 * math.Pow(10.0, (float64(power)-dbm0MaxPower)/20.0) * 32768.0 / shaperGain
}

// Samples are clamped rather than left to wrap.  Headroom normally makes
// this a no-op, but a hostile power setting must not overflow.
func saturate16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// saturate16f clamps while still in the float domain.  Conversion of an
// out of range float to an integer type is not defined, so the clamp has
// to come first.
func saturate16f(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
