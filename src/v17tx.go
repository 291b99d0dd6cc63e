package v17

/*------------------------------------------------------------------
 *
 * Purpose:     ITU-T V.17 modem transmitter.
 *
 *		Converts a caller supplied bit stream into a 16 bit PCM
 *		sample stream at 8000 samples/s: training handshake,
 *		self synchronizing scrambler, differential + convolutional
 *		(trellis) encoding, root raised cosine pulse shaping and
 *		1800 Hz carrier modulation, at 7200, 9600, 12000 or 14400
 *		bit/s.
 *
 *		One Tx drives one logical channel.  All calls are expected
 *		from a single goroutine; the bit source and status handler
 *		run inline inside Generate and must not block.
 *
 *----------------------------------------------------------------*/

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

const (
	// Output sample rate, Hz.
	sampleRate = 8000.0

	// Nominal carrier frequency, Hz.
	carrierFreq = 1800.0

	// Level of a full scale 0 dBm0 test tone, dBm.
	dbm0MaxPower = 3.14

	// Transmit level applied until SetPower is called.
	defaultPower = -14.0
)

// Segments of the training sequence, in symbols.
const (
	trainingSegTEPA     = 0                      // Start of the optional TEP tone.
	trainingSegTEPB     = trainingSegTEPA + 480  // End of the unmodulated carrier (talker echo protection).
	trainingSeg1        = trainingSegTEPB + 48   // End of the TEP silence; segment 1 follows.
	trainingSeg2        = trainingSeg1 + 256     // End of segment 1, the ABAB phase reversals.
	trainingSeg3        = trainingSeg2 + 2976    // End of segment 2, the scrambled CDBA four point run.
	trainingSeg4        = trainingSeg3 + 64      // End of segment 3, the scrambled bridge word.
	trainingShortSeg4   = trainingSeg2 + 38      // Short training jumps to segment 4 from here.
	trainingEnd         = trainingSeg4 + 48      // End of segment 4, scrambled ones; data follows.
	trainingShutdownA   = trainingEnd + 32       // End of the shutdown ones segment.
	trainingShutdownEnd = trainingShutdownA + 48 // End of the shutdown silence.
)

// The 16 bit pattern transmitted in the bridge section of the training
// sequence, two bits per symbol, repeating every eight symbols.
const bridgeWord = 0x8880

// Scrambler register value loaded on every restart.  Must never be zero.
const scrambleInit = 0x2ECDD5

// EndOfData is returned by a bit source when the application has no more
// bits to send.  The transmitter then runs the shutdown sequence.
const EndOfData = -1

// GetBitFunc supplies the next bit to transmit, 0 or 1, or EndOfData.
// It is called bits-per-symbol times per data symbol, in order.
type GetBitFunc func() int

// Status is a protocol state notification, not an error.
type Status int

const (
	// StatusEndOfData reports that the bit source is exhausted and
	// the shutdown sequence has begun.
	StatusEndOfData Status = iota

	// StatusShutdownComplete reports that the shutdown sequence has
	// finished; Generate returns 0 from now on.
	StatusShutdownComplete
)

func (s Status) String() string {
	switch s {
	case StatusEndOfData:
		return "end of data"
	case StatusShutdownComplete:
		return "shutdown complete"
	}
	return "unknown"
}

// StatusFunc receives transmitter status notifications.  Fire and forget;
// it runs inline within Generate.
type StatusFunc func(status Status)

// ErrInvalidBitRate is returned for bit rates outside the supported set
// {7200, 9600, 12000, 14400}.
var ErrInvalidBitRate = errors.New("v17: unsupported bit rate")

// Tx holds the state of one V.17 transmitter.  Create with New, rearm
// with Restart for every new transmission attempt.
type Tx struct {
	logger *log.Logger

	bitRate       int
	bitsPerSymbol int
	constellation []sigPoint

	scrambleReg        uint32
	diff               int
	convolution        int
	constellationState int

	trainingStep int
	inTraining   bool
	shortTrain   bool

	// While true, bits come from the built-in all-ones source: from
	// restart until training completes, and again from end of data
	// until shutdown completes.
	internalSource bool

	getBit        GetBitFunc
	statusHandler StatusFunc

	baudPhase int
	path      signalPath
	power     float32
}

// New creates a floating point transmitter for the given bit rate.  The
// echo protection tone is prepended when tep is set.  Power defaults to
// -14 dBm0 and the first training sequence is the long one.
func New(bitRate int, tep bool, getBit GetBitFunc) (*Tx, error) {
	return NewWithPrecision(bitRate, tep, FloatingPoint, getBit)
}

// NewWithPrecision creates a transmitter with an explicit numeric
// precision for the signal path.  External behavior is identical for
// both precisions.
func NewWithPrecision(bitRate int, tep bool, precision Precision, getBit GetBitFunc) (*Tx, error) {
	var t = &Tx{
		logger: log.New(io.Discard),
		getBit: getBit,
		path:   newSignalPath(precision, ddsPhaseRate(carrierFreq)),
	}
	t.SetPower(defaultPower)
	if err := t.Restart(bitRate, tep, false); err != nil {
		return nil, err
	}
	return t, nil
}

// Restart rearms the transmitter for a new transmission attempt.  All
// transient state is reset; power, callbacks and precision carry over.
func (t *Tx) Restart(bitRate int, tep bool, shortTrain bool) error {
	switch bitRate {
	case 14400:
		t.bitsPerSymbol = 6
		t.constellation = constellation14400[:]
	case 12000:
		t.bitsPerSymbol = 5
		t.constellation = constellation12000[:]
	case 9600:
		t.bitsPerSymbol = 4
		t.constellation = constellation9600[:]
	case 7200:
		t.bitsPerSymbol = 3
		t.constellation = constellation7200[:]
	default:
		return ErrInvalidBitRate
	}
	t.bitRate = bitRate

	// NB: some modems seem to use 3 instead of 1 for long training.
	if shortTrain {
		t.diff = 0
	} else {
		t.diff = 1
	}
	t.convolution = 0
	t.scrambleReg = scrambleInit
	t.constellationState = 0

	t.inTraining = true
	t.shortTrain = shortTrain
	t.internalSource = true
	if tep {
		t.trainingStep = trainingSegTEPA
	} else {
		t.trainingStep = trainingSeg1
	}

	t.baudPhase = 0
	t.path.reset()

	t.logger.Debug("restart", "bit_rate", bitRate, "tep", tep, "short_train", shortTrain)
	return nil
}

// SetPower sets the transmit level in dBm0.  No other side effects.
func (t *Tx) SetPower(power float32) {
	t.power = power
	t.path.setGain(power)
	t.logger.Debug("power set", "dbm0", power)
}

// Power reports the configured transmit level in dBm0.
func (t *Tx) Power() float32 {
	return t.power
}

// BitRate reports the configured bit rate.
func (t *Tx) BitRate() int {
	return t.bitRate
}

// SetGetBit swaps the active bit source.  The built-in all-ones source
// used during training and shutdown is selected by state, not identity,
// so a swap mid-shutdown takes effect for the next transmission without
// disturbing the one winding down.
func (t *Tx) SetGetBit(getBit GetBitFunc) {
	t.getBit = getBit
}

// SetStatusHandler registers the callback for end-of-data and
// shutdown-complete notifications.
func (t *Tx) SetStatusHandler(handler StatusFunc) {
	t.statusHandler = handler
}

// SetLogger replaces the transmitter's logger.  The default discards.
func (t *Tx) SetLogger(logger *log.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Release is the point for collaborators to unwind external resources.
// The transmitter itself holds none.
func (t *Tx) Release() {}

func (t *Tx) scramble(in int) int {
	var out = (in ^ int(t.scrambleReg>>17) ^ int(t.scrambleReg>>22)) & 1
	t.scrambleReg = t.scrambleReg<<1 | uint32(out)
	return out
}

// encode maps the non-redundant bits of one symbol to a constellation
// index: two bits differentially encoded, one redundant bit from the
// rate 2/3 convolutional code, the rest passed through.
func (t *Tx) encode(q int) int {
	t.diff = diffCode[((q&0x03)<<2)|t.diff]

	var y2 = t.diff >> 1
	var y1 = t.diff
	var this2 = y2 ^ y1 ^ (t.convolution >> 2) ^ ((y2 ^ (t.convolution >> 1)) & t.convolution)
	var this1 = y2 ^ (t.convolution >> 1) ^ (y1 & t.convolution)
	t.convolution = ((t.convolution & 1) << 2) | ((this2 & 1) << 1) | (this1 & 1)

	return ((q << 1) & 0x78) | (t.diff << 1) | ((t.convolution >> 2) & 1)
}

// Differential encoder transition table, keyed by the current dibit and
// the previous phase.
var diffCode = [16]int{
	0, 1, 2, 3, 1, 2, 3, 0, 2, 3, 0, 1, 3, 0, 1, 2,
}

// nextBit pulls one bit from the active source.  Hitting end of data
// switches to the built-in all-ones source and starts the shutdown
// sequence.
func (t *Tx) nextBit() int {
	if t.internalSource {
		return 1
	}
	var bit = t.getBit()
	if bit == EndOfData {
		t.logger.Debug("status", "event", StatusEndOfData)
		if t.statusHandler != nil {
			t.statusHandler(StatusEndOfData)
		}
		t.internalSource = true
		t.inTraining = true
		return 1
	}
	return bit & 1
}

// trainingGet produces the next training symbol.  Training symbols
// bypass the encoder entirely, though the scrambled segments still
// advance the scrambler.
func (t *Tx) trainingGet() sigPoint {
	t.trainingStep++
	if t.trainingStep <= trainingSeg3 {
		if t.trainingStep <= trainingSeg2 {
			if t.trainingStep <= trainingSegTEPB {
				// Optional segment: unmodulated carrier (talker echo protection).
				return trainingConstellation[0]
			}
			if t.trainingStep <= trainingSeg1 {
				// Optional segment: silence (talker echo protection).
				return sigPoint{}
			}
			// Segment 1: ABAB...
			return trainingConstellation[(t.trainingStep&1)^1]
		}
		// Segment 2: CDBA...
		var bits = t.scramble(1)
		bits = bits<<1 | t.scramble(1)
		t.constellationState = cdbaToABCD[bits]
		if t.shortTrain && t.trainingStep == trainingShortSeg4 {
			// Go straight to the ones test.
			t.trainingStep = trainingSeg4
		}
		return trainingConstellation[t.constellationState]
	}
	// Segment 3: bridge...
	var shift = ((t.trainingStep - trainingSeg3 - 1) & 0x7) << 1
	var bits = t.scramble(bridgeWord >> shift)
	bits = bits<<1 | t.scramble(bridgeWord>>(shift+1))
	t.constellationState = (t.constellationState + dibitToStep[bits]) & 3
	return trainingConstellation[t.constellationState]
}

// getBaud produces the next symbol, from the training generator or the
// scramble/encode pipeline as the phase dictates.
func (t *Tx) getBaud() sigPoint {
	if t.inTraining {
		if t.trainingStep <= trainingEnd {
			if t.trainingStep < trainingSeg4 {
				return t.trainingGet()
			}
			// The last step in training is to send some 1's.
			t.trainingStep++
			if t.trainingStep > trainingEnd {
				// Training finished - commence normal operation.
				t.internalSource = false
				t.inTraining = false
				t.logger.Debug("training complete", "symbols", t.trainingStep-1)
			}
		} else {
			// The shutdown sequence is 32 bauds of all 1's, then
			// 48 bauds of silence.
			t.trainingStep++
			if t.trainingStep > trainingShutdownA {
				if t.trainingStep == trainingShutdownEnd {
					t.logger.Debug("status", "event", StatusShutdownComplete)
					if t.statusHandler != nil {
						t.statusHandler(StatusShutdownComplete)
					}
				}
				return sigPoint{}
			}
		}
	}
	var bits = 0
	for i := 0; i < t.bitsPerSymbol; i++ {
		bits |= t.scramble(t.nextBit()) << i
	}
	return t.constellation[t.encode(bits)]
}

// Generate fills amp with passband samples and returns the number
// written.  Returns 0 once the shutdown sequence has fully completed.
func (t *Tx) Generate(amp []int16) int {
	if t.trainingStep >= trainingShutdownEnd {
		// Once the shutdown sequence has been sent, stop sending
		// completely.
		return 0
	}
	for sample := range amp {
		// 2400 baud at 8000 samples/s: 3 symbol boundaries per 10
		// samples.
		t.baudPhase += 3
		if t.baudPhase >= 10 {
			t.baudPhase -= 10
			t.path.push(t.getBaud())
		}
		amp[sample] = t.path.sample(t.baudPhase)
	}
	return len(amp)
}
