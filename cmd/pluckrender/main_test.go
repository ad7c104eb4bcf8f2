package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
)

func TestRunKeysWritesWAV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "keys.wav")

	err := run(options{
		out:      out,
		keys:     "q2we",
		interval: 50 * time.Millisecond,
		tail:     200 * time.Millisecond,
		rate:     22050,
		block:    256,
		seed:     1,
		peakDB:   -1,
	})
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("output is not a valid WAV file")
	}
	if dec.SampleRate != 22050 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
}

func TestRunUnmappedKeyWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bad.wav")

	err := run(options{out: out, keys: "q!", interval: 10 * time.Millisecond, rate: 44100, block: 64, seed: 1})
	if err == nil {
		t.Fatal("expected error for unmapped key")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("output file exists after failed render: %v", statErr)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"no output", options{keys: "q"}},
		{"no source", options{out: "x.wav"}},
		{"both sources", options{out: "x.wav", keys: "q", midiPath: "a.mid"}},
		{"unmapped key", options{out: filepath.Join(t.TempDir(), "x.wav"), keys: "qa", rate: 44100, block: 64}},
		{"missing midi", options{out: "x.wav", midiPath: filepath.Join(t.TempDir(), "none.mid")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
