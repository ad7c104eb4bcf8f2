package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Alternating returns [amp, -amp, amp, ...], the highest-energy pattern a
// string buffer bounded by amp can hold.
func Alternating(amp float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amp
		if i%2 == 1 {
			out[i] = -amp
		}
	}
	return out
}
