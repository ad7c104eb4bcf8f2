package pluck

import (
	"math/rand"
	"time"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

// Source supplies uniformly distributed values in [0, 1) for string
// excitation. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Option configures a Voice or an Instrument.
type Option func(*config)

type config struct {
	proc   core.ProcessorConfig
	source Source
}

func defaultConfig() config {
	return config{proc: core.DefaultProcessorConfig()}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.source == nil {
		cfg.source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cfg
}

// WithSampleRate sets the audio rate voice buffer lengths are derived from.
// Non-positive rates are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) {
		core.WithSampleRate(sampleRate)(&cfg.proc)
	}
}

// WithSource sets the random source used by Pluck. An Instrument shares it
// between all of its voices.
func WithSource(src Source) Option {
	return func(cfg *config) {
		if src != nil {
			cfg.source = src
		}
	}
}

// WithSeed uses a math/rand source with a fixed seed, making excitation
// reproducible.
func WithSeed(seed int64) Option {
	return WithSource(rand.New(rand.NewSource(seed)))
}
