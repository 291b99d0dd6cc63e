package main

/*------------------------------------------------------------------
 *
 * Purpose:     Generate an audio file containing a complete V.17
 *		transmission: training, payload, shutdown.
 *
 *		Examples:
 *			v17gen -o z1.wav
 *			v17gen -B 9600 -t "Hello, world" -o z9.wav
 *			echo -n "payload" | v17gen -o z.wav -
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	v17 "github.com/softmodem/v17tx/src"
)

const defaultMessage = "The quick brown fox jumps over the lazy dog.  1 of 1"

// profile mirrors the command line options so a standing configuration
// can be kept in a file.  Flags given explicitly win.
type profile struct {
	BitRate    int     `yaml:"bit_rate"`
	Power      float64 `yaml:"power_dbm0"`
	TEP        bool    `yaml:"tep"`
	ShortTrain bool    `yaml:"short_train"`
	FixedPoint bool    `yaml:"fixed_point"`
	Output     string  `yaml:"output"`
}

func loadProfile(path string, p *profile) error {
	var data, err = os.ReadFile(path) //nolint:gosec // User-supplied config path from CLI.
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, p)
}

func main() {
	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "v17gen"})

	var cfg = profile{
		BitRate: 14400,
		Power:   -14.0,
	}

	var bitRate = pflag.IntP("bit-rate", "B", 0, "Bit rate: 7200, 9600, 12000 or 14400.")
	var power = pflag.Float64P("power", "P", 0, "Transmit level in dBm0.")
	var tep = pflag.Bool("tep", false, "Prepend the talker echo protection tone.")
	var shortTrain = pflag.Bool("short-train", false, "Use the short training sequence.")
	var fixedPoint = pflag.Bool("fixed-point", false, "Use the fixed point signal path.")
	var outputFile = pflag.StringP("output-file", "o", "", "Send output to .wav file.")
	var text = pflag.StringP("text", "t", "", "Payload text.  Default is a built-in test message.")
	var inputFile = pflag.StringP("input-file", "i", "", "Read the payload from a file.")
	var configFile = pflag.StringP("config", "c", "", "YAML profile with standing options.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate audio file for a V.17 transmission.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options] [-]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nA trailing \"-\" reads the payload from stdin.\n")
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *configFile != "" {
		if err := loadProfile(*configFile, &cfg); err != nil {
			logger.Fatal("Can't read config", "file", *configFile, "err", err)
		}
	}
	if pflag.Lookup("bit-rate").Changed {
		cfg.BitRate = *bitRate
	}
	if pflag.Lookup("power").Changed {
		cfg.Power = *power
	}
	if pflag.Lookup("tep").Changed {
		cfg.TEP = *tep
	}
	if pflag.Lookup("short-train").Changed {
		cfg.ShortTrain = *shortTrain
	}
	if pflag.Lookup("fixed-point").Changed {
		cfg.FixedPoint = *fixedPoint
	}
	if *outputFile != "" {
		cfg.Output = *outputFile
	}
	if cfg.Output == "" {
		logger.Fatal("An output file is required (-o).")
	}

	var payload = []byte(defaultMessage)
	if *text != "" {
		payload = []byte(*text)
	}
	if *inputFile != "" {
		var data, err = os.ReadFile(*inputFile) //nolint:gosec // User-supplied input path from CLI.
		if err != nil {
			logger.Fatal("Can't read payload", "file", *inputFile, "err", err)
		}
		payload = data
	}
	if pflag.NArg() > 0 && pflag.Arg(0) == "-" {
		var data, err = io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("Can't read stdin", "err", err)
		}
		payload = data
	}

	var precision = v17.FloatingPoint
	if cfg.FixedPoint {
		precision = v17.FixedPoint
	}

	var tx, err = v17.NewWithPrecision(cfg.BitRate, cfg.TEP, precision, v17.NewByteSource(payload))
	if err != nil {
		logger.Fatal("Can't create transmitter", "bit_rate", cfg.BitRate, "err", err)
	}
	tx.SetLogger(logger)
	tx.SetPower(float32(cfg.Power))
	tx.SetStatusHandler(func(status v17.Status) {
		logger.Info("Transmitter status", "status", status)
	})
	if cfg.ShortTrain {
		if err := tx.Restart(cfg.BitRate, cfg.TEP, true); err != nil {
			logger.Fatal("Can't restart transmitter", "err", err)
		}
	}

	var out *v17.WAVWriter
	out, err = v17.CreateWAV(cfg.Output, 8000)
	if err != nil {
		logger.Fatal("Can't open output", "err", err)
	}

	var amp [160]int16
	var total = 0
	for {
		var n = tx.Generate(amp[:])
		if n == 0 {
			break
		}
		if err := out.WriteSamples(amp[:n]); err != nil {
			logger.Fatal("Write failed", "err", err)
		}
		total += n
	}
	if err := out.Close(); err != nil {
		logger.Fatal("Close failed", "err", err)
	}

	logger.Info("Done", "file", cfg.Output, "samples", total,
		"seconds", fmt.Sprintf("%.2f", float64(total)/8000.0))
}
