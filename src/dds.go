package v17

/*------------------------------------------------------------------
 *
 * Purpose:     Direct digital synthesis of the carrier.
 *
 *		A 32 bit phase accumulator advances by a fixed increment
 *		each sample; the top bits index a quarter-aligned sine
 *		table.  Same scheme as any soundcard tone generator, done
 *		twice (sine and cosine) to get a unit complex rotation.
 *
 *----------------------------------------------------------------*/

import (
	"math"
)

const (
	ddsSteps = 1024
	ddsShift = 32 - 10
)

var (
	ddsSineI16 [ddsSteps]int16
	ddsSineF32 [ddsSteps]float32
)

func init() {
	for j := 0; j < ddsSteps; j++ {
		var a = float64(j) / ddsSteps * 2 * math.Pi
		ddsSineF32[j] = float32(math.Sin(a))
		ddsSineI16[j] = int16(math.Round(math.Sin(a) * 32767))
	}
}

// ddsPhaseRate converts a frequency in Hz to a per-sample phase
// accumulator increment.
func ddsPhaseRate(freq float64) uint32 {
	return uint32(freq/sampleRate*4294967296.0 + 0.5)
}

// ddsFloat returns the rotation (cos, sin) at the current phase, then
// advances the accumulator.
func ddsFloat(phase *uint32, rate uint32) (float32, float32) {
	var p = *phase
	*phase += rate
	var s = ddsSineF32[(p>>ddsShift)&(ddsSteps-1)]
	var c = ddsSineF32[((p>>ddsShift)+ddsSteps/4)&(ddsSteps-1)]
	return c, s
}

// ddsFixed is the integer twin of ddsFloat, full scale 32767.
func ddsFixed(phase *uint32, rate uint32) (int16, int16) {
	var p = *phase
	*phase += rate
	var s = ddsSineI16[(p>>ddsShift)&(ddsSteps-1)]
	var c = ddsSineI16[((p>>ddsShift)+ddsSteps/4)&(ddsSteps-1)]
	return c, s
}
