// Package pluck implements Karplus-Strong plucked-string synthesis.
//
// A [Voice] is one string: a delay line one period long that is filled with
// white noise on [Voice.Pluck] and passed through an averaging low-pass with a
// fixed energy loss on every [Voice.Step]. An [Instrument] holds 37 voices
// tuned chromatically from two octaves below to one octave above A4 (440 Hz)
// and addresses them by keyboard character or by semitone offset.
//
// A driver plucks zero or more strings, then reads [Instrument.Sample] and
// calls [Instrument.Step] once per output sample. [Instrument.Render] does
// the same for a whole block.
//
// Nothing in this package is safe for concurrent use.
package pluck
