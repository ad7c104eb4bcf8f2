package pluck

import "errors"

// Errors returned by voice and instrument functions.
var (
	// ErrInvalidFrequency is returned when a voice is tuned to a frequency <= 0.
	ErrInvalidFrequency = errors.New("pluck: frequency must be positive")
	// ErrBufferTooSmall is returned when a voice would hold fewer than two samples.
	ErrBufferTooSmall = errors.New("pluck: ring buffer needs at least two samples")
	// ErrBufferTooLarge is returned when a frequency is so low the buffer
	// length exceeds MaxBufferLen.
	ErrBufferTooLarge = errors.New("pluck: ring buffer too large")
	// ErrNonFiniteSample is returned when explicit initial samples contain NaN or Inf.
	ErrNonFiniteSample = errors.New("pluck: initial samples must be finite")
	// ErrUnmappedKey is returned by Instrument.Pluck for a key outside the layout.
	ErrUnmappedKey = errors.New("pluck: key not in keyboard layout")
)
