// Package score drives a plucked-string instrument offline from a list of
// timed pluck events.
package score

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
)

// Errors returned by score functions.
var ErrInvalidLength = errors.New("score: render length must be >= 0")

// Event is one pluck. ByKey events address a string through the keyboard
// layout, the others by semitone offset from A4.
type Event struct {
	At    time.Duration
	Key   rune
	Pitch int
	ByKey bool
}

// Player is the instrument surface the renderer needs. *pluck.Instrument
// implements it.
type Player interface {
	HasKey(r rune) bool
	Pluck(r rune) error
	PlayPitch(offset int)
	Render(dst []float64)
}

// KeyEvents plucks each rune of keys in turn, interval apart.
func KeyEvents(keys string, interval time.Duration) []Event {
	var events []Event
	i := 0
	for _, r := range keys {
		events = append(events, Event{At: time.Duration(i) * interval, Key: r, ByKey: true})
		i++
	}
	return events
}

// SortEvents orders events by time, keeping the order of simultaneous ones.
func SortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		default:
			return 0
		}
	})
}

// Length returns the sample count needed to play every event followed by
// tail. The last event always falls inside the returned length.
func Length(events []Event, tail time.Duration, sampleRate float64) int {
	if len(events) == 0 {
		return sampleIndex(tail, sampleRate)
	}

	var end time.Duration
	for _, ev := range events {
		end = max(end, ev.At)
	}
	return sampleIndex(end+max(tail, 0), sampleRate) + 1
}

// CheckKeys returns ErrUnmappedKey, wrapped with the event index, for the
// first ByKey event p has no string for.
func CheckKeys(p Player, events []Event) error {
	for i, ev := range events {
		if ev.ByKey && !p.HasKey(ev.Key) {
			return fmt.Errorf("score: event %d at %v: %w: %q", i, ev.At, pluck.ErrUnmappedKey, ev.Key)
		}
	}
	return nil
}

// Render plays events into a buffer of length samples, rendering in blocks
// of at most cfg.BlockSize and splitting blocks at event times. Events at or
// beyond the end are dropped. Keys are checked up front, so a key outside
// the layout fails before any sample is rendered, even when its event lies
// past the end.
func Render(p Player, events []Event, cfg core.ProcessorConfig, length int) ([]float64, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if err := CheckKeys(p, events); err != nil {
		return nil, err
	}

	events = slices.Clone(events)
	SortEvents(events)

	block := cfg.BlockSize
	if block <= 0 {
		block = core.DefaultProcessorConfig().BlockSize
	}

	out := make([]float64, length)
	next := 0
	for pos := 0; pos < length; {
		for next < len(events) && sampleIndex(events[next].At, cfg.SampleRate) <= pos {
			if err := fire(p, events[next]); err != nil {
				return nil, fmt.Errorf("score: event %d at %v: %w", next, events[next].At, err)
			}
			next++
		}

		end := min(pos+block, length)
		if next < len(events) {
			end = min(end, sampleIndex(events[next].At, cfg.SampleRate))
		}

		p.Render(out[pos:end])
		pos = end
	}

	return out, nil
}

// Normalize scales buf so its largest magnitude equals peak and returns the
// applied gain. Silent buffers are left alone and report a gain of 0.
func Normalize(buf []float64, peak float64) float64 {
	largest := 0.0
	for _, v := range buf {
		largest = max(largest, math.Abs(v))
	}
	if largest == 0 {
		return 0
	}

	gain := peak / largest
	vecmath.ScaleBlock(buf, buf, gain)
	return gain
}

func fire(p Player, ev Event) error {
	if ev.ByKey {
		return p.Pluck(ev.Key)
	}
	p.PlayPitch(ev.Pitch)
	return nil
}

func sampleIndex(at time.Duration, sampleRate float64) int {
	if at <= 0 {
		return 0
	}
	return int(math.Round(at.Seconds() * sampleRate))
}
