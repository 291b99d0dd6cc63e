package v17

import (
	"math"
)

// floatPath is the floating point rendition of the transmit signal path.
type floatPath struct {
	histRe [filterHistory]float32
	histIm [filterHistory]float32
	step   int

	phase     uint32
	phaseRate uint32

	gain float32
}

func (p *floatPath) reset() {
	p.histRe = [filterHistory]float32{}
	p.histIm = [filterHistory]float32{}
	p.step = 0
	p.phase = 0
}

func (p *floatPath) push(pt sigPoint) {
	// Mirrored at two offsets so sample() reads a contiguous window.
	p.histRe[p.step] = float32(pt.re)
	p.histRe[p.step+filterSteps] = float32(pt.re)
	p.histIm[p.step] = float32(pt.im)
	p.histIm[p.step+filterSteps] = float32(pt.im)
	p.step++
	if p.step >= filterSteps {
		p.step = 0
	}
}

func (p *floatPath) sample(baudPhase int) int16 {
	var row = &shaperFloat[coeffSets-1-baudPhase]

	var xr, xi float32
	for i := 0; i < filterSteps; i++ {
		xr += row[i] * p.histRe[i+p.step]
		xi += row[i] * p.histIm[i+p.step]
	}

	var zr, zi = ddsFloat(&p.phase, p.phaseRate)

	return saturate16f(math.Round(float64((xr*zr - xi*zi) * p.gain)))
}

func (p *floatPath) setGain(power float32) {
	p.gain = float32(powerGain(power))
}
