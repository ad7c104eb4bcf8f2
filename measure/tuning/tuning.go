// Package tuning estimates the fundamental frequency of a rendered signal,
// used to check that string voices sound at their nominal pitch.
package tuning

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

// Errors returned by Estimate.
var (
	ErrEmptySignal       = errors.New("tuning: signal is empty")
	ErrInvalidSampleRate = errors.New("tuning: sample rate must be positive")
	ErrInvalidRange      = errors.New("tuning: search range is empty")
	ErrSilent            = errors.New("tuning: no energy in search range")
)

// Config holds estimation parameters. Zero MinFreq / MaxFreq search the
// whole spectrum above DC.
type Config struct {
	SampleRate float64
	MinFreq    float64
	MaxFreq    float64
}

// Result holds the estimated fundamental.
type Result struct {
	Frequency float64
	Bin       int
	FFTSize   int
	PowerDB   float64
}

// Estimate finds the strongest spectral peak of signal inside the
// configured range and refines it by parabolic interpolation on log power.
func Estimate(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}
	if !(cfg.SampleRate > 0) {
		return Result{}, ErrInvalidSampleRate
	}

	fftSize := nextPowerOf2(len(signal))
	if fftSize < 4 {
		fftSize = 4
	}

	maxBin := fftSize / 2
	binHz := cfg.SampleRate / float64(fftSize)

	lower := 1
	if cfg.MinFreq > 0 {
		lower = clampInt(int(math.Ceil(cfg.MinFreq/binHz)), 1, maxBin)
	}
	upper := maxBin - 1
	if cfg.MaxFreq > 0 {
		upper = clampInt(int(math.Floor(cfg.MaxFreq/binHz)), 1, maxBin-1)
	}
	if lower > upper {
		return Result{}, fmt.Errorf("%w: [%v, %v] Hz at %v Hz resolution",
			ErrInvalidRange, cfg.MinFreq, cfg.MaxFreq, binHz)
	}

	power, err := powerSpectrum(signal, fftSize)
	if err != nil {
		return Result{}, err
	}

	peak := lower
	for i := lower; i <= upper; i++ {
		if power[i] > power[peak] {
			peak = i
		}
	}
	if power[peak] <= 0 {
		return Result{}, ErrSilent
	}

	offset := interpolatePeak(power[peak-1], power[peak], power[peak+1])

	return Result{
		Frequency: (float64(peak) + offset) * binHz,
		Bin:       peak,
		FFTSize:   fftSize,
		PowerDB:   core.LinearPowerToDB(power[peak]),
	}, nil
}

// Cents returns the pitch distance from reference to measured in cents.
func Cents(measured, reference float64) float64 {
	return 1200 * math.Log2(measured/reference)
}

// powerSpectrum returns |X[k]|^2 for k in [0, fftSize/2] of the
// Hann-windowed, zero-padded signal.
func powerSpectrum(signal []float64, fftSize int) ([]float64, error) {
	windowed := make([]float64, len(signal))
	copy(windowed, signal)
	vecmath.MulBlockInPlace(windowed, hann(len(signal)))

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tuning: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("tuning: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)
	return power, nil
}

// hann returns a symmetric Hann window.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// interpolatePeak fits a parabola through three log-power bins and returns
// the vertex offset from the centre bin, in bins.
func interpolatePeak(left, centre, right float64) float64 {
	const floor = 1e-300
	a := math.Log(math.Max(left, floor))
	b := math.Log(math.Max(centre, floor))
	c := math.Log(math.Max(right, floor))

	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}

	return core.Clamp(0.5*(a-c)/denom, -0.5, 0.5)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
