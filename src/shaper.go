package v17

/*------------------------------------------------------------------
 *
 * Purpose:     Root raised cosine transmit pulse shaping.
 *
 *		The shaper runs as a polyphase bank: the prototype filter
 *		is designed at 24000 Hz (ten sub-phases per 2400 baud
 *		symbol) and split into ten rows of nine symbol-spaced
 *		taps.  Each output sample picks the row matching the
 *		current fractional symbol phase, so the 8000 Hz output
 *		stream is interpolated at 10/3 samples per symbol without
 *		ever computing the intermediate rate.
 *
 *----------------------------------------------------------------*/

import (
	"math"
)

const (
	// Symbol span of the pulse shaping filter.
	filterSteps = 9

	// Number of fractional-phase coefficient rows.
	coeffSets = 10

	// The symbol history ring is mirrored at two offsets so a
	// window of filterSteps entries can always be read without
	// wrapping.
	filterHistory = 2 * filterSteps

	// Excess bandwidth.  2400 baud * (1 + 0.25) / 2 = 1500 Hz each
	// side of the 1800 Hz carrier, filling 300..3300 Hz.
	shaperRolloff = 0.25

	// Scale for the fixed point coefficient rows (Q11).
	fixedTapScale = 2048
)

var (
	shaperFloat [coeffSets][filterSteps]float32
	shaperFixed [coeffSets][filterSteps]int16

	// Mean passband gain of the bank, used by the output power
	// calculation.  Close to 1.0 with the normalization below.
	shaperGain float64
)

func init() {
	var proto [filterSteps * coeffSets]float64

	for k := range proto {
		var t = (float64(k) - float64(len(proto)-1)/2.0) / coeffSets
		proto[k] = rrc(t, shaperRolloff)
	}

	// Scale for unity gain per coefficient row.

	var sum float64
	for k := range proto {
		sum += proto[k]
	}
	var scale = coeffSets / sum
	for k := range proto {
		proto[k] *= scale
	}

	// Split the prototype into the per-phase rows.

	var g float64
	for p := 0; p < coeffSets; p++ {
		for i := 0; i < filterSteps; i++ {
			var c = proto[i*coeffSets+p]
			shaperFloat[p][i] = float32(c)
			shaperFixed[p][i] = int16(math.Round(c * fixedTapScale))
			g += c
		}
	}
	shaperGain = g / coeffSets
}

/*------------------------------------------------------------------
 *
 * Name:        rrc
 *
 * Purpose:     Root Raised Cosine function.
 *
 * Inputs:      t	- Time in units of symbol duration.
 *		a	- Roll off factor, between 0 and 1.
 *
 * Returns:	The sinc function with cos windowing to taper off the
 *		edges faster.  1 for t = 0, 0 at all other integer t.
 *
 *----------------------------------------------------------------*/

func rrc(t float64, a float64) float64 {

	var sinc, window float64

	if t > -0.001 && t < 0.001 {
		sinc = 1
	} else {
		sinc = math.Sin(math.Pi*t) / (math.Pi * t)
	}

	if math.Abs(a*t) > 0.499 && math.Abs(a*t) < 0.501 {
		window = math.Pi / 4
	} else {
		window = math.Cos(math.Pi*a*t) / (1 - math.Pow(2*a*t, 2))
	}

	return sinc * window
}
