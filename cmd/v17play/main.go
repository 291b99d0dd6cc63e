package main

/*------------------------------------------------------------------
 *
 * Purpose:     Play a V.17 transmission on the default sound device.
 *
 *		Mostly useful for listening to what a fax handshake
 *		actually sounds like, and for feeding a real modem over
 *		a loopback cable.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	v17 "github.com/softmodem/v17tx/src"
)

func main() {
	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "v17play"})

	var bitRate = pflag.IntP("bit-rate", "B", 14400, "Bit rate: 7200, 9600, 12000 or 14400.")
	var power = pflag.Float64P("power", "P", -14.0, "Transmit level in dBm0.")
	var tep = pflag.Bool("tep", false, "Prepend the talker echo protection tone.")
	var text = pflag.StringP("text", "t", "Hello from V.17", "Payload text.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Play a V.17 transmission on the default audio device.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	var tx, err = v17.New(*bitRate, *tep, v17.NewByteSource([]byte(*text)))
	if err != nil {
		logger.Fatal("Can't create transmitter", "bit_rate", *bitRate, "err", err)
	}
	tx.SetLogger(logger)
	tx.SetPower(float32(*power))
	tx.SetStatusHandler(func(status v17.Status) {
		logger.Info("Transmitter status", "status", status)
	})

	if err := portaudio.Initialize(); err != nil {
		logger.Fatal("Can't initialize audio", "err", err)
	}
	defer portaudio.Terminate() //nolint:errcheck

	var amp = make([]int16, 800)
	var stream *portaudio.Stream
	stream, err = portaudio.OpenDefaultStream(0, 1, 8000, len(amp), &amp)
	if err != nil {
		logger.Fatal("Can't open audio stream", "err", err)
	}
	defer stream.Close() //nolint:errcheck

	if err := stream.Start(); err != nil {
		logger.Fatal("Can't start audio stream", "err", err)
	}

	for {
		var n = tx.Generate(amp)
		if n == 0 {
			break
		}
		for i := n; i < len(amp); i++ {
			amp[i] = 0
		}
		if err := stream.Write(); err != nil {
			logger.Warn("Audio write", "err", err)
		}
	}

	if err := stream.Stop(); err != nil {
		logger.Warn("Audio stop", "err", err)
	}
}
