package v17

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each row of the transition table is a constant rotation: the next
// phase is the previous one advanced by the dibit itself.  Dibits 1 and
// 3 therefore walk all four phases; dibit 2 is a half turn and only
// alternates between opposite phases.
func TestDiffCodeStructure(t *testing.T) {
	for q := 0; q < 4; q++ {
		for p := 0; p < 4; p++ {
			assert.Equal(t, (p+q)&3, diffCode[(q<<2)|p], "dibit %d phase %d", q, p)
		}
	}

	for _, q := range []int{1, 3} {
		var seen [4]bool
		var phase = 0
		for i := 0; i < 4; i++ {
			phase = diffCode[(q<<2)|phase]
			seen[phase] = true
		}
		for p := 0; p < 4; p++ {
			assert.True(t, seen[p], "dibit %d never reaches phase %d", q, p)
		}
	}

	var phase = 0
	for i := 0; i < 6; i++ {
		phase = diffCode[(2<<2)|phase]
		var expected = 2
		if i%2 == 1 {
			expected = 0
		}
		assert.Equal(t, expected, phase, "dibit 2 step %d", i)
	}
}

// Known sequences through the differential + convolutional encoder,
// starting from the reset state of a long training restart.
func TestEncodeKnownSequences(t *testing.T) {
	var cases = []struct {
		name    string
		q       int
		symbols []int
	}{
		{"dibit 00", 0, []int{2, 2, 3, 2, 2, 2, 3, 2, 2, 2, 3, 2}},
		{"dibit 01", 1, []int{4, 7, 1, 2, 5, 7, 0, 2, 5, 6, 0, 3}},
		{"dibit 10", 2, []int{6, 3, 7, 3, 6, 2, 7, 3, 7, 2, 6, 3}},
		{"dibit 11", 3, []int{0, 6, 5, 3, 1, 6, 4, 2, 1, 7, 5, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tx = newTestTx(t, 14400)
			require.Equal(t, 1, tx.diff)
			require.Equal(t, 0, tx.convolution)

			for i, expected := range tc.symbols {
				assert.Equal(t, expected, tx.encode(tc.q), "symbol %d", i)
			}
		})
	}
}

// The differential phase cycles with period four for a repeated dibit.
func TestEncodeDiffPhaseCycle(t *testing.T) {
	var tx = newTestTx(t, 14400)

	var expected = []int{2, 3, 0, 1, 2, 3, 0, 1}
	for i, want := range expected {
		tx.encode(1)
		assert.Equal(t, want, tx.diff, "step %d", i)
	}
}

// The pass-through bits land in the upper part of the constellation
// index untouched.
func TestEncodePassThroughBits(t *testing.T) {
	var tx = newTestTx(t, 14400)

	for _, q := range []int{0x00, 0x04, 0x14, 0x3c} {
		var sym = tx.encode(q)
		assert.Equal(t, (q<<1)&0x78, sym&0x78, "q %#02x", q)
	}
}

// Every constellation index the encoder can produce must be in range for
// the table of every bit rate.
func TestEncodeIndexInRange(t *testing.T) {
	var sizes = map[int]int{7200: 16, 9600: 32, 12000: 64, 14400: 128}

	for bitRate, size := range sizes {
		var tx = newTestTx(t, bitRate)
		var mask = 1<<tx.bitsPerSymbol - 1
		for q := 0; q <= mask; q++ {
			var sym = tx.encode(q & mask)
			require.GreaterOrEqual(t, sym, 0)
			require.Less(t, sym, size, "bit rate %d, q %#02x", bitRate, q)
		}
	}
}
