package v17

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"
	"pgregory.net/rapid"
)

// countingSource returns an endless bit source that counts how many times
// it has been called.
func countingSource(calls *int) GetBitFunc {
	return func() int {
		*calls++
		return 1
	}
}

// lcgSource returns a deterministic pseudo random bit source.
func lcgSource(seed uint32) GetBitFunc {
	var state = seed
	return func() int {
		state = state*1103515245 + 12345
		return int(state>>16) & 1
	}
}

func TestNewInvalidBitRate(t *testing.T) {
	for _, bitRate := range []int{0, 300, 2400, 4800, 14401, 28800} {
		var _, err = New(bitRate, false, func() int { return 1 })
		assert.ErrorIs(t, err, ErrInvalidBitRate, "bit rate %d", bitRate)
	}
}

func TestAccessors(t *testing.T) {
	var tx = newTestTx(t, 9600)
	assert.Equal(t, 9600, tx.BitRate())
	assert.InDelta(t, -14.0, tx.Power(), 1e-6)

	tx.SetPower(-6.5)
	assert.InDelta(t, -6.5, tx.Power(), 1e-6)
}

// The bit source must stay untouched for the exact duration of the
// training sequence: 3872 symbols with the TEP tone, 3344 without, 342
// for short training.  At 2400 baud and 8000 samples/s there are exactly
// 3 symbols per 10 samples, which pins each boundary to a sample count.
func TestTrainingDuration(t *testing.T) {
	var cases = []struct {
		name       string
		bitRate    int
		tep        bool
		shortTrain bool
		samples    int
		bits       int
	}{
		{"long training still running", 14400, false, false, 11140, 0},
		{"first data symbol", 14400, false, false, 11150, 6},
		{"four data symbols", 14400, false, false, 11160, 24},
		{"short training still running", 14400, false, true, 1140, 0},
		{"short training first data", 14400, false, true, 1150, 18},
		{"tep training still running", 14400, true, false, 12900, 0},
		{"tep first data symbol", 14400, true, false, 12910, 6},
		{"12000 four data symbols", 12000, false, false, 11160, 20},
		{"9600 four data symbols", 9600, false, false, 11160, 16},
		{"7200 four data symbols", 7200, false, false, 11160, 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls = 0
			var tx, err = New(tc.bitRate, tc.tep, countingSource(&calls))
			require.NoError(t, err)
			if tc.shortTrain {
				require.NoError(t, tx.Restart(tc.bitRate, tc.tep, true))
			}

			var amp = make([]int16, tc.samples)
			require.Equal(t, tc.samples, tx.Generate(amp))
			assert.Equal(t, tc.bits, calls)
		})
	}
}

// On average there must be exactly 3 symbol boundaries per 10 samples,
// so the count of bits consumed over a long run is fully determined.
func TestSymbolTiming(t *testing.T) {
	var calls = 0
	var tx, err = New(14400, false, countingSource(&calls))
	require.NoError(t, err)

	var amp = make([]int16, 21140)
	require.Equal(t, len(amp), tx.Generate(amp))

	// floor(3*21140/10) symbols, less the 3344 training symbols, at 6
	// bits each.
	assert.Equal(t, (6342-3344)*6, calls)
}

// Driving the transmitter to end of data must produce the two status
// notifications exactly once each, in order, and then silence forever.
func TestShutdownSequence(t *testing.T) {
	var tx, err = New(14400, false, func() int { return EndOfData })
	require.NoError(t, err)

	var events []Status
	tx.SetStatusHandler(func(status Status) {
		events = append(events, status)
	})

	var amp [160]int16
	var total = 0
	for {
		var n = tx.Generate(amp[:])
		if n == 0 {
			break
		}
		total += n
	}

	// Training (3344 symbols), one symbol that hits end of data, 31
	// more of ones, 48 of silence: shutdown completes at symbol 3424,
	// inside the 72nd block of 160.
	assert.Equal(t, 72*160, total)
	require.Equal(t, []Status{StatusEndOfData, StatusShutdownComplete}, events)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, tx.Generate(amp[:]))
	}
	assert.Len(t, events, 2)
}

// Restart must give a bit exact replay.
func TestRestartReproducible(t *testing.T) {
	var tx, err = New(14400, false, lcgSource(12345))
	require.NoError(t, err)

	var first = make([]int16, 4000)
	require.Equal(t, len(first), tx.Generate(first))

	require.NoError(t, tx.Restart(14400, false, false))
	tx.SetGetBit(lcgSource(12345))

	var second = make([]int16, 4000)
	require.Equal(t, len(second), tx.Generate(second))
	assert.Equal(t, first, second)
}

// The output must not depend on how Generate calls are chunked.
func TestGenerateChunking(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const total = 4000

		var whole, err = New(14400, false, lcgSource(999))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		var expected = make([]int16, total)
		whole.Generate(expected)

		var chunked *Tx
		chunked, err = New(14400, false, lcgSource(999))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		var got = make([]int16, total)
		for off := 0; off < total; {
			var n = rapid.IntRange(1, 500).Draw(t, "chunk")
			if off+n > total {
				n = total - off
			}
			chunked.Generate(got[off : off+n])
			off += n
		}

		for i := range expected {
			if expected[i] != got[i] {
				t.Fatalf("sample %d differs: %d vs %d", i, expected[i], got[i])
			}
		}
	})
}

// A 6.02 dB step in the requested level must double the output scaling.
func TestPowerGainStep(t *testing.T) {
	var ratio = powerGain(-7.98) / powerGain(-14.0)
	assert.InDelta(t, 2.0, ratio, 0.01)

	assert.Greater(t, powerGain(-6.0), powerGain(-14.0))
	assert.Greater(t, powerGain(-14.0), powerGain(-30.0))
}

// Raising the power must scale the waveform itself, not just the gain
// figure.
func TestPowerChangesAmplitude(t *testing.T) {
	var peak = func(power float32) int {
		var tx, err = New(14400, true, func() int { return 1 })
		require.NoError(t, err)
		tx.SetPower(power)

		var amp = make([]int16, 1600)
		tx.Generate(amp)
		var max = 0
		for _, s := range amp[256:] {
			if int(s) > max {
				max = int(s)
			}
		}
		return max
	}

	var low = peak(-14.0)
	var high = peak(-7.98)
	require.Greater(t, low, 500)
	assert.InDelta(t, 2.0, float64(high)/float64(low), 0.1)
}

// During the TEP segment a single constellation point repeats, so the
// output is an unmodulated carrier.  Its spectral peak must sit at
// 1800 Hz.
func TestCarrierFrequency(t *testing.T) {
	var tx, err = New(14400, true, func() int { return 1 })
	require.NoError(t, err)

	var amp = make([]int16, 1600)
	require.Equal(t, len(amp), tx.Generate(amp))

	const n = 1024
	var data = make([]float64, n)
	for i := range data {
		data[i] = float64(amp[256+i])
	}

	var fft = fourier.NewFFT(n)
	var coeffs = fft.Coefficients(nil, data)

	var peakBin = 1
	var peakMag = 0.0
	for bin := 1; bin < len(coeffs); bin++ {
		if mag := cmplx.Abs(coeffs[bin]); mag > peakMag {
			peakMag = mag
			peakBin = bin
		}
	}

	var peakFreq = float64(peakBin) * sampleRate / n
	assert.InDelta(t, carrierFreq, peakFreq, 25.0)
}

// The fixed point path must track the floating point one closely; the
// symbol stream is integer exact in both, only waveform rounding may
// differ.
func TestFixedPointAgreement(t *testing.T) {
	var flt, err = NewWithPrecision(14400, false, FloatingPoint, lcgSource(7))
	require.NoError(t, err)
	var fxd *Tx
	fxd, err = NewWithPrecision(14400, false, FixedPoint, lcgSource(7))
	require.NoError(t, err)

	var a = make([]int16, 4000)
	var b = make([]int16, 4000)
	require.Equal(t, len(a), flt.Generate(a))
	require.Equal(t, len(b), fxd.Generate(b))

	var maxAmp = 0
	var maxDiff = 0
	for i := range a {
		if v := int(math.Abs(float64(a[i]))); v > maxAmp {
			maxAmp = v
		}
		if d := int(math.Abs(float64(a[i]) - float64(b[i]))); d > maxDiff {
			maxDiff = d
		}
	}

	require.Greater(t, maxAmp, 1000, "no signal produced")
	assert.LessOrEqual(t, maxDiff, 300, "paths diverged")
}

// A hostile power setting must clamp, not wrap.
func TestSaturation(t *testing.T) {
	assert.Equal(t, int16(32767), saturate16(1<<20))
	assert.Equal(t, int16(-32768), saturate16(-(1 << 20)))
	assert.Equal(t, int16(1234), saturate16(1234))

	// The float clamp must act before the integer conversion, which is
	// not defined for out of range values.
	assert.Equal(t, int16(32767), saturate16f(1e18))
	assert.Equal(t, int16(-32768), saturate16f(-1e18))
	assert.Equal(t, int16(32767), saturate16f(math.Inf(1)))
	assert.Equal(t, int16(-32768), saturate16f(math.Inf(-1)))
	assert.Equal(t, int16(0), saturate16f(math.NaN()))
	assert.Equal(t, int16(-1234), saturate16f(-1234.4))

	// An absurd level drives the waveform into the clamp.
	var tx, err = New(14400, true, func() int { return 1 })
	require.NoError(t, err)
	tx.SetPower(20.0)

	var amp = make([]int16, 1600)
	tx.Generate(amp)
	var max = int16(0)
	for _, s := range amp {
		if s > max {
			max = s
		}
	}
	assert.Equal(t, int16(32767), max)

	// Far past any plausible level the waveform pins to both rails
	// instead of wrapping, in either precision.
	var rails = func(precision Precision) (bool, bool) {
		var tx, err = NewWithPrecision(14400, true, precision, func() int { return 1 })
		require.NoError(t, err)
		tx.SetPower(300.0)

		var amp = make([]int16, 1600)
		tx.Generate(amp)
		var hi, lo = false, false
		for _, s := range amp {
			if s == 32767 {
				hi = true
			}
			if s == -32768 {
				lo = true
			}
		}
		return hi, lo
	}

	for _, precision := range []Precision{FloatingPoint, FixedPoint} {
		var hi, lo = rails(precision)
		assert.True(t, hi, "precision %d", precision)
		assert.True(t, lo, "precision %d", precision)
	}
}
