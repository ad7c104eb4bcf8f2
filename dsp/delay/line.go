// Package delay provides a fixed-size circular delay line.
package delay

import "fmt"

// Line is a circular delay line. Once full, the slot under the write head
// holds the oldest sample.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zero-filled delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// NewFromSamples returns a delay line holding a copy of samples, with
// samples[0] as the oldest entry.
func NewFromSamples(samples []float64) (*Line, error) {
	d, err := New(len(samples))
	if err != nil {
		return nil, err
	}
	copy(d.buffer, samples)
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample, replacing the oldest.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Read(1) is the most recent write
// and Read(Len()) the oldest sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := ((d.writePos-delay)%size + size) % size
	return d.buffer[readPos]
}

// Front returns the oldest sample, the next one Write will replace.
func (d *Line) Front() float64 {
	return d.buffer[d.writePos]
}

// Fill overwrites every slot with successive values of next, oldest first.
// The write head is left where it was.
func (d *Line) Fill(next func() float64) {
	size := len(d.buffer)
	for i := 0; i < size; i++ {
		d.buffer[(d.writePos+i)%size] = next()
	}
}

// Snapshot copies the line into dst oldest first and returns it. dst is
// reallocated when it is too short.
func (d *Line) Snapshot(dst []float64) []float64 {
	size := len(d.buffer)
	if cap(dst) < size {
		dst = make([]float64, size)
	}
	dst = dst[:size]
	n := copy(dst, d.buffer[d.writePos:])
	copy(dst[n:], d.buffer[:d.writePos])
	return dst
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
