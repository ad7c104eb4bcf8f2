package score

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSMF(t *testing.T) *bytes.Buffer {
	t.Helper()

	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 69, 100))
	tr.Add(0, midi.NoteOn(1, 72, 0)) // velocity 0 is a note off
	tr.Add(480, midi.NoteOff(0, 69))
	tr.Add(0, midi.NoteOn(0, 60, 90))
	tr.Add(480, midi.NoteOn(0, 21, 90))
	tr.Close(0)

	s := smf.New()
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestReadMIDI(t *testing.T) {
	events, err := ReadMIDI(writeSMF(t))
	if err != nil {
		t.Fatal(err)
	}

	wantPitch := []int{0, -9, -48}
	if len(events) != len(wantPitch) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantPitch), events)
	}

	for i, ev := range events {
		if ev.ByKey {
			t.Fatalf("event %d is ByKey", i)
		}
		if ev.Pitch != wantPitch[i] {
			t.Fatalf("event %d pitch = %d, want %d", i, ev.Pitch, wantPitch[i])
		}
	}

	if events[0].At != 0 {
		t.Fatalf("first event at %v, want 0", events[0].At)
	}
	if !(events[1].At > events[0].At && events[2].At > events[1].At) {
		t.Fatalf("events not ordered in time: %+v", events)
	}
}

func TestReadMIDIInvalid(t *testing.T) {
	if _, err := ReadMIDI(bytes.NewReader([]byte("not a midi file"))); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
