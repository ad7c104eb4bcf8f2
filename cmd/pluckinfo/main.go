// Command pluckinfo prints the tuning of every string of the 37-string
// instrument: nominal pitch, ring buffer length, the pitch that length
// actually yields, and the pitch measured from a rendered pluck.
//
// Usage:
//
//	pluckinfo [flags] [key ...]
//
// Without arguments it reports all strings.
//
// Examples:
//
//	pluckinfo
//	pluckinfo -rate 48000 q z
//	pluckinfo -seconds 2 -seed 7
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
	"github.com/cwbudde/algo-pluck/measure/tuning"
)

func main() {
	rate := flag.Float64("rate", core.DefaultSampleRate, "sample rate in Hz")
	seconds := flag.Float64("seconds", 1, "length of the analysed pluck in seconds")
	seed := flag.Int64("seed", 1, "excitation noise seed")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pluckinfo [flags] [key ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints nominal, effective and measured tuning of each string.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every string.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pluckinfo\n")
		fmt.Fprintf(os.Stderr, "  pluckinfo -rate 48000 q z\n")
	}
	flag.Parse()

	inst, err := pluck.NewInstrument(pluck.WithSampleRate(*rate), pluck.WithSeed(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	indices, err := resolveKeys(inst, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	length := int(*seconds * *rate)
	if length <= 0 {
		fmt.Fprintf(os.Stderr, "error: -seconds must be positive\n")
		os.Exit(1)
	}

	printTuning(inst, indices, *rate, length)
}

func resolveKeys(inst *pluck.Instrument, args []string) ([]int, error) {
	if len(args) == 0 {
		all := make([]int, pluck.VoiceCount)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var indices []int
	for _, arg := range args {
		for _, r := range arg {
			i, ok := inst.KeyIndex(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q", pluck.ErrUnmappedKey, r)
			}
			indices = append(indices, i)
		}
	}
	return indices, nil
}

func printTuning(inst *pluck.Instrument, indices []int, rate float64, length int) {
	layout := []rune(pluck.KeyLayout)
	buf := make([]float64, length)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Index\tKey\tOffset\tNominal [Hz]\tLength\tEffective [Hz]\tMeasured [Hz]\tError [cents]\tPeak [dB]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t---\t------\t------------\t------\t--------------\t-------------\t-------------\t---------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, i := range indices {
		v := inst.Voice(i)
		nominal := inst.Frequency(i)

		v.Pluck()
		v.Render(buf)
		v.Reset()

		res, err := tuning.Estimate(buf, tuning.Config{
			SampleRate: rate,
			MinFreq:    nominal / 1.5,
			MaxFreq:    nominal * 1.5,
		})
		measured, cents, peak := "-", "-", "-"
		if err == nil {
			measured = fmt.Sprintf("%.2f", res.Frequency)
			cents = fmt.Sprintf("%+.1f", tuning.Cents(res.Frequency, nominal))
			peak = fmt.Sprintf("%.1f", res.PowerDB)
		}

		if _, err := fmt.Fprintf(tw, "%d\t%q\t%+d\t%.2f\t%d\t%.2f\t%s\t%s\t%s\n",
			i,
			layout[i],
			i+pluck.PitchOffsetMin,
			nominal,
			v.Len(),
			v.EffectiveFrequency(),
			measured,
			cents,
			peak,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
