package v17

import (
	"math"
)

// fixedPath is the integer rendition of the transmit signal path: int16
// history and coefficients, int32 accumulators, Q15 carrier products.
type fixedPath struct {
	histRe [filterHistory]int16
	histIm [filterHistory]int16
	step   int

	phase     uint32
	phaseRate uint32

	// Scaled so that (filtered >> 4, carrier product >> 15,
	// gain product >> 15) lands on the same output level as the
	// floating point path.
	gain int32
}

func (p *fixedPath) reset() {
	p.histRe = [filterHistory]int16{}
	p.histIm = [filterHistory]int16{}
	p.step = 0
	p.phase = 0
}

func (p *fixedPath) push(pt sigPoint) {
	p.histRe[p.step] = pt.re
	p.histRe[p.step+filterSteps] = pt.re
	p.histIm[p.step] = pt.im
	p.histIm[p.step+filterSteps] = pt.im
	p.step++
	if p.step >= filterSteps {
		p.step = 0
	}
}

func (p *fixedPath) sample(baudPhase int) int16 {
	var row = &shaperFixed[coeffSets-1-baudPhase]

	var xr, xi int32
	for i := 0; i < filterSteps; i++ {
		xr += int32(row[i]) * int32(p.histRe[i+p.step])
		xi += int32(row[i]) * int32(p.histIm[i+p.step])
	}
	xr >>= 4
	xi >>= 4

	var zr, zi = ddsFixed(&p.phase, p.phaseRate)
	var v = (xr*int32(zr) - xi*int32(zi)) >> 15

	return saturate16(int32((int64(v) * int64(p.gain)) >> 15))
}

func (p *fixedPath) setGain(power float32) {
	// Taps are Q11 and the filter sum is knocked down by 4 bits, so
	// the baseband sits 128x above constellation units.  256/32768
	// brings the Q15 gain product back in line with the float path.
	var g = math.Round(powerGain(power) * 256.0)
	if g > math.MaxInt32 {
		g = math.MaxInt32
	}
	p.gain = int32(g)
}
