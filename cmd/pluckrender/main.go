// Command pluckrender renders the 37-string instrument offline to a mono
// 16-bit WAV file, driven either by a standard MIDI file or by a string of
// keyboard keys played one after another.
//
// Usage:
//
//	pluckrender -o out.wav [-midi song.mid | -keys "q2we"] [flags]
//
// Examples:
//
//	pluckrender -o scale.wav -keys "q2we4r5ty7u8i" -interval 200ms
//	pluckrender -o song.wav -midi song.mid -rate 48000 -peak -3
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
	"github.com/cwbudde/algo-pluck/internal/score"
)

const bitDepth = 16

// logger is replaced by initLogger once flags are parsed.
var logger = slog.Default()

func initLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

type options struct {
	out      string
	midiPath string
	keys     string
	interval time.Duration
	tail     time.Duration
	rate     float64
	block    int
	seed     int64
	peakDB   float64
}

func main() {
	var opts options
	flag.StringVar(&opts.out, "o", "", "output WAV file (required)")
	flag.StringVar(&opts.midiPath, "midi", "", "standard MIDI file to play")
	flag.StringVar(&opts.keys, "keys", "", "keyboard keys to pluck in sequence")
	flag.DurationVar(&opts.interval, "interval", 250*time.Millisecond, "time between -keys plucks")
	flag.DurationVar(&opts.tail, "tail", 2*time.Second, "time rendered after the last pluck")
	flag.Float64Var(&opts.rate, "rate", core.DefaultSampleRate, "sample rate in Hz")
	flag.IntVar(&opts.block, "block", 1024, "render block size in samples")
	flag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "excitation noise seed")
	flag.Float64Var(&opts.peakDB, "peak", -1, "output peak level in dBFS")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pluckrender -o out.wav [-midi file | -keys keys] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders plucked strings offline to a mono WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	initLogger(*verbose)

	if err := run(opts); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.out == "" {
		return errors.New("missing -o")
	}
	if (opts.midiPath == "") == (opts.keys == "") {
		return errors.New("exactly one of -midi and -keys is required")
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(opts.rate), core.WithBlockSize(opts.block))

	events, err := loadEvents(opts)
	if err != nil {
		return err
	}
	logger.Debug("events loaded", "count", len(events))

	inst, err := pluck.NewInstrument(pluck.WithSampleRate(cfg.SampleRate), pluck.WithSeed(opts.seed))
	if err != nil {
		return err
	}

	length := score.Length(events, opts.tail, cfg.SampleRate)
	out, err := score.Render(inst, events, cfg, length)
	if err != nil {
		return err
	}

	gain := score.Normalize(out, core.DBToLinear(opts.peakDB))
	logger.Debug("normalized", "gain", gain, "steps", inst.ElapsedSteps())

	if err := writeWAV(opts.out, out, int(cfg.SampleRate)); err != nil {
		return err
	}

	logger.Info("wrote file",
		"path", opts.out,
		"samples", len(out),
		"duration", time.Duration(float64(len(out))/cfg.SampleRate*float64(time.Second)),
	)
	return nil
}

func loadEvents(opts options) ([]score.Event, error) {
	if opts.keys != "" {
		return score.KeyEvents(opts.keys, opts.interval), nil
	}

	f, err := os.Open(opts.midiPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := score.ReadMIDI(f)
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		if ev.Pitch < pluck.PitchOffsetMin || ev.Pitch > pluck.PitchOffsetMax {
			logger.Warn("note out of range, ignored",
				"note", ev.Pitch+score.ReferenceNote, "at", ev.At)
		}
	}
	return events, nil
}

func writeWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	data := make([]int, len(samples))
	full := float64(int(1)<<(bitDepth-1) - 1)
	for i, s := range samples {
		data[i] = int(math.Round(core.Clamp(s, -1, 1) * full))
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return f.Close()
}
