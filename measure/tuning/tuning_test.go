package tuning

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pluck/dsp/pluck"
	"github.com/cwbudde/algo-pluck/internal/testutil"
)

func TestEstimateSine(t *testing.T) {
	const sampleRate = 44100

	for _, freq := range []float64{110, 261.63, 440, 987.77} {
		sig := testutil.DeterministicSine(freq, sampleRate, 0.5, 16384)

		res, err := Estimate(sig, Config{SampleRate: sampleRate})
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(res.Frequency-freq) > 0.5 {
			t.Fatalf("Estimate(%v Hz) = %v", freq, res.Frequency)
		}
		if res.FFTSize != 16384 {
			t.Fatalf("FFTSize = %d, want 16384", res.FFTSize)
		}
	}
}

func TestEstimateRangeSelectsPeak(t *testing.T) {
	const sampleRate = 48000

	low := testutil.DeterministicSine(200, sampleRate, 1, 8000)
	high := testutil.DeterministicSine(1500, sampleRate, 0.2, 8000)
	for i := range low {
		low[i] += high[i]
	}

	res, err := Estimate(low, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Frequency-200) > 2 {
		t.Fatalf("full range: got %v want ~200", res.Frequency)
	}

	res, err = Estimate(low, Config{SampleRate: sampleRate, MinFreq: 1000, MaxFreq: 2000})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Frequency-1500) > 2 {
		t.Fatalf("restricted range: got %v want ~1500", res.Frequency)
	}
}

func TestEstimatePluckedVoice(t *testing.T) {
	v, err := pluck.NewVoice(220, pluck.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}

	v.Pluck()

	sig := make([]float64, 32768)
	v.Render(sig)

	res, err := Estimate(sig, Config{SampleRate: 44100, MinFreq: 150, MaxFreq: 300})
	if err != nil {
		t.Fatal(err)
	}

	if c := Cents(res.Frequency, 220); math.Abs(c) > 15 {
		t.Fatalf("plucked 220 Hz voice measured at %v Hz (%.1f cents)", res.Frequency, c)
	}
}

func TestEstimateErrors(t *testing.T) {
	if _, err := Estimate(nil, Config{SampleRate: 44100}); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}

	sig := testutil.DeterministicSine(440, 44100, 1, 1024)
	if _, err := Estimate(sig, Config{}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v, want ErrInvalidSampleRate", err)
	}

	cfg := Config{SampleRate: 44100, MinFreq: 900, MaxFreq: 400}
	if _, err := Estimate(sig, cfg); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}

	if _, err := Estimate(make([]float64, 1024), Config{SampleRate: 44100}); !errors.Is(err, ErrSilent) {
		t.Fatalf("err = %v, want ErrSilent", err)
	}
}

func TestCents(t *testing.T) {
	if got := Cents(880, 440); math.Abs(got-1200) > 1e-9 {
		t.Fatalf("Cents(880, 440) = %v, want 1200", got)
	}
	if got := Cents(440, 440); got != 0 {
		t.Fatalf("Cents(440, 440) = %v, want 0", got)
	}
	if got := Cents(pluck.PitchFrequency(-1), 440); math.Abs(got+100) > 1e-9 {
		t.Fatalf("Cents(semitone down) = %v, want -100", got)
	}
}

func TestInterpolatePeakSymmetric(t *testing.T) {
	if got := interpolatePeak(0.5, 1, 0.5); got != 0 {
		t.Fatalf("offset = %v, want 0", got)
	}
	if got := interpolatePeak(0.2, 1, 0.8); got <= 0 {
		t.Fatalf("offset = %v, want > 0", got)
	}
}
