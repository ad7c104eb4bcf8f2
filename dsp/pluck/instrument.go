package pluck

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

const (
	// VoiceCount is the number of strings on an Instrument.
	VoiceCount = 37
	// ReferenceFrequency is the pitch of offset 0 (A4).
	ReferenceFrequency = 440.0
	// PitchOffsetMin is the lowest playable semitone offset.
	PitchOffsetMin = -24
	// PitchOffsetMax is the highest playable semitone offset.
	PitchOffsetMax = PitchOffsetMin + VoiceCount - 1
)

// PitchFrequency returns the equal-tempered frequency offset semitones
// away from ReferenceFrequency.
func PitchFrequency(offset int) float64 {
	return ReferenceFrequency * math.Pow(2, float64(offset)/12)
}

// Instrument is a bank of VoiceCount strings advanced in lockstep.
type Instrument struct {
	voices    [VoiceCount]*Voice
	keys      keyTable
	stepCount int
	scratch   []float64
}

// NewInstrument builds the tuned voices and the key table. With the default
// sample rate it cannot fail; a very low WithSampleRate can make the top
// strings shorter than two samples.
func NewInstrument(opts ...Option) (*Instrument, error) {
	cfg := applyOptions(opts)
	shared := []Option{WithSampleRate(cfg.proc.SampleRate), WithSource(cfg.source)}

	inst := &Instrument{keys: newKeyTable(KeyLayout)}
	for i := range inst.voices {
		v, err := NewVoice(PitchFrequency(i+PitchOffsetMin), shared...)
		if err != nil {
			return nil, fmt.Errorf("pluck: voice %d: %w", i, err)
		}
		inst.voices[i] = v
	}

	return inst, nil
}

// HasKey reports whether r, case-folded, is in KeyLayout.
func (in *Instrument) HasKey(r rune) bool {
	_, ok := in.keys.lookup(r)
	return ok
}

// KeyIndex returns the voice index r maps to.
func (in *Instrument) KeyIndex(r rune) (int, bool) {
	return in.keys.lookup(r)
}

// Pluck excites the voice mapped to r. Keys outside the layout return
// ErrUnmappedKey and leave every voice untouched.
func (in *Instrument) Pluck(r rune) error {
	i, ok := in.keys.lookup(r)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnmappedKey, r)
	}
	in.voices[i].Pluck()
	return nil
}

// PlayPitch excites the voice offset semitones from A4. Offsets outside
// [PitchOffsetMin, PitchOffsetMax] are ignored, so callers may sweep a
// range without bounds checks.
func (in *Instrument) PlayPitch(offset int) {
	i := offset - PitchOffsetMin
	if i >= 0 && i < VoiceCount {
		in.voices[i].Pluck()
	}
}

// Step advances the step counter and every voice by one sample.
func (in *Instrument) Step() {
	in.stepCount++
	for _, v := range in.voices {
		v.Step()
	}
}

// Sample returns the sum of all voice samples.
func (in *Instrument) Sample() float64 {
	sum := 0.0
	for _, v := range in.voices {
		sum += v.Sample()
	}
	return sum
}

// ElapsedSteps returns how many times the instrument has been stepped.
func (in *Instrument) ElapsedSteps() int {
	return in.stepCount
}

// Render fills dst with the mixed output, equivalent to calling Sample then
// Step for each element.
func (in *Instrument) Render(dst []float64) {
	if len(dst) == 0 {
		return
	}

	in.scratch = core.EnsureLen(in.scratch, len(dst))
	core.Zero(dst)
	for _, v := range in.voices {
		v.Render(in.scratch)
		vecmath.AddBlockInPlace(dst, in.scratch)
	}
	in.stepCount += len(dst)
}

// Voice returns voice i, or nil when i is out of range.
func (in *Instrument) Voice(i int) *Voice {
	if i < 0 || i >= VoiceCount {
		return nil
	}
	return in.voices[i]
}

// Frequency returns the nominal tuning of voice i.
func (in *Instrument) Frequency(i int) float64 {
	return PitchFrequency(i + PitchOffsetMin)
}
