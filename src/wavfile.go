package v17

/*------------------------------------------------------------------
 *
 * Purpose:     Write the generated sample stream to a .WAV file.
 *
 * Description:	The header sizes are not known until the end, so the
 *		header is written with zero lengths, samples are
 *		appended through a buffered writer, and Close seeks
 *		back to fix the lengths up.
 *
 *----------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

type wavHeader struct { /* .WAV file header. */
	RIFF            [4]byte /* "RIFF" */
	FileSize        int32   /* file length - 8 */
	WAVE            [4]byte /* "WAVE" */
	Fmt             [4]byte /* "fmt " */
	FmtSize         int32   /* 16. */
	WFormatTag      int16   /* 1 for PCM. */
	NChannels       int16   /* 1 for mono, 2 for stereo. */
	NSamplesPerSec  int32   /* sampling freq, Hz. */
	NAvgBytesPerSec int32   /* = NBlockAlign * NSamplesPerSec. */
	NBlockAlign     int16   /* = WBitsPerSample / 8 * NChannels. */
	WBitsPerSample  int16   /* 16 or 8. */
	Data            [4]byte /* "data" */
	DataSize        int32   /* number of bytes following. */
}

// WAVWriter streams mono 16 bit PCM to a .wav file.
type WAVWriter struct {
	f         *os.File
	buf       *bufio.Writer
	header    wavHeader
	byteCount int
}

// CreateWAV opens name for writing and emits a provisional header.
func CreateWAV(name string, samplesPerSec int) (*WAVWriter, error) {
	var f, err = os.Create(name) //nolint:gosec // User-supplied output path from CLI.
	if err != nil {
		return nil, fmt.Errorf("open %s for write: %w", name, err)
	}

	var w = &WAVWriter{f: f}
	copy(w.header.RIFF[:], "RIFF")
	copy(w.header.WAVE[:], "WAVE")
	copy(w.header.Fmt[:], "fmt ")
	w.header.FmtSize = 16
	w.header.WFormatTag = 1
	w.header.NChannels = 1
	w.header.NSamplesPerSec = int32(samplesPerSec)
	w.header.WBitsPerSample = 16
	w.header.NBlockAlign = w.header.WBitsPerSample / 8 * w.header.NChannels
	w.header.NAvgBytesPerSec = int32(w.header.NBlockAlign) * w.header.NSamplesPerSec
	copy(w.header.Data[:], "data")

	if err := binary.Write(f, binary.LittleEndian, w.header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header to %s: %w", name, err)
	}

	w.buf = bufio.NewWriter(f)
	return w, nil
}

// WriteSamples appends a block of samples.
func (w *WAVWriter) WriteSamples(amp []int16) error {
	if err := binary.Write(w.buf, binary.LittleEndian, amp); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	w.byteCount += len(amp) * 2
	return nil
}

// Close goes back to the beginning of the file and fills in the sizes.
func (w *WAVWriter) Close() error {
	w.header.FileSize = int32(w.byteCount + binary.Size(w.header) - 8)
	w.header.DataSize = int32(w.byteCount)

	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("flush samples: %w", err)
	}
	if _, err := w.f.Seek(0, 0); err != nil {
		w.f.Close()
		return fmt.Errorf("seek to header: %w", err)
	}
	if err := binary.Write(w.f, binary.LittleEndian, w.header); err != nil {
		w.f.Close()
		return fmt.Errorf("rewrite header: %w", err)
	}
	return w.f.Close()
}
