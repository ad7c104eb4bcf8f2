package pluck

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/delay"
)

const (
	// DecayFactor is the energy kept by each averaging step.
	DecayFactor = 0.996
	// MaxBufferLen caps the samples a single string may hold.
	MaxBufferLen = math.MaxInt32
)

// Voice is a single Karplus-Strong string.
type Voice struct {
	line       *delay.Line
	source     Source
	sampleRate float64
	frequency  float64
}

// NewVoice returns a silent string tuned to frequency. The buffer holds
// round(sampleRate/frequency) samples.
func NewVoice(frequency float64, opts ...Option) (*Voice, error) {
	if !(frequency > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}

	cfg := applyOptions(opts)

	n := math.Round(cfg.proc.SampleRate / frequency)
	if n < 2 {
		return nil, fmt.Errorf("%w: %v Hz at %v Hz sample rate gives %v",
			ErrBufferTooSmall, frequency, cfg.proc.SampleRate, n)
	}
	if n > MaxBufferLen {
		return nil, fmt.Errorf("%w: %v Hz at %v Hz sample rate gives %v",
			ErrBufferTooLarge, frequency, cfg.proc.SampleRate, n)
	}

	line, err := delay.New(int(n))
	if err != nil {
		return nil, err
	}

	return &Voice{
		line:       line,
		source:     cfg.source,
		sampleRate: cfg.proc.SampleRate,
		frequency:  frequency,
	}, nil
}

// NewVoiceFromSamples returns a string whose buffer is a copy of samples,
// samples[0] being the first value Sample returns.
func NewVoiceFromSamples(samples []float64, opts ...Option) (*Voice, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBufferTooSmall, len(samples))
	}

	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: index %d is %v", ErrNonFiniteSample, i, v)
		}
	}

	line, err := delay.NewFromSamples(samples)
	if err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)

	return &Voice{
		line:       line,
		source:     cfg.source,
		sampleRate: cfg.proc.SampleRate,
	}, nil
}

// Pluck replaces every buffer slot with noise uniform in [-0.5, 0.5).
func (v *Voice) Pluck() {
	v.line.Fill(v.excite)
}

func (v *Voice) excite() float64 {
	return v.source.Float64() - 0.5
}

// Step drops the front sample and appends the decayed average of it and
// its successor.
func (v *Voice) Step() {
	oldest := v.line.Front()
	next := v.line.Read(v.line.Len() - 1)
	v.line.Write(core.FlushDenormals((oldest + next) / 2 * DecayFactor))
}

// Sample returns the front of the buffer.
func (v *Voice) Sample() float64 {
	return v.line.Front()
}

// Render writes len(dst) successive samples, stepping after each one.
func (v *Voice) Render(dst []float64) {
	for i := range dst {
		dst[i] = v.line.Front()
		v.Step()
	}
}

// Len returns the buffer length, the string period in samples.
func (v *Voice) Len() int {
	return v.line.Len()
}

// Frequency returns the frequency the voice was tuned to, or 0 when it was
// built from explicit samples.
func (v *Voice) Frequency() float64 {
	return v.frequency
}

// EffectiveFrequency returns the pitch the buffer length actually produces.
func (v *Voice) EffectiveFrequency() float64 {
	return v.sampleRate / float64(v.line.Len())
}

// Reset silences the string.
func (v *Voice) Reset() {
	v.line.Reset()
}

// Snapshot returns a copy of the buffer, front first.
func (v *Voice) Snapshot() []float64 {
	return v.line.Snapshot(nil)
}
