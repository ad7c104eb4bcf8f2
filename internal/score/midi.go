package score

import (
	"fmt"
	"io"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReferenceNote is the MIDI note number of pitch offset 0 (A4).
const ReferenceNote = 69

// ReadMIDI reads a standard MIDI file and returns one pitch event per note
// start on any track or channel, ordered by time. Note numbers map to pitch
// offsets relative to ReferenceNote; the instrument ignores those it has no
// string for.
func ReadMIDI(r io.Reader) ([]Event, error) {
	var events []Event

	rd := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		var ch, key, vel uint8
		if midi.Message(te.Message).GetNoteStart(&ch, &key, &vel) {
			events = append(events, Event{
				At:    time.Duration(te.AbsMicroSeconds) * time.Microsecond,
				Pitch: int(key) - ReferenceNote,
			})
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("score: read midi: %w", err)
	}

	SortEvents(events)
	return events, nil
}
