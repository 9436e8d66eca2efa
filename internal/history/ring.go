// Package history keeps the bounded, insertion-ordered buffer of recent
// samples that drives the chart.
package history

import "pingclock/internal/models"

// DefaultCapacity is the number of samples kept per session
const DefaultCapacity = 100

// Ring is a fixed-capacity FIFO of samples. When full, Push evicts the
// oldest entry. Ring is not safe for concurrent use.
type Ring struct {
	buf   []models.Sample
	start int
	size  int
}

// New creates a ring holding at most capacity samples.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]models.Sample, capacity)}
}

// Push appends s, evicting the oldest sample when the ring is full
func (r *Ring) Push(s models.Sample) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = s
		r.size++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of samples held
func (r *Ring) Len() int { return r.size }

// Cap returns the maximum number of samples held
func (r *Ring) Cap() int { return len(r.buf) }

// At returns the i-th oldest sample
func (r *Ring) At(i int) models.Sample {
	if i < 0 || i >= r.size {
		panic("history: index out of range")
	}
	return r.buf[(r.start+i)%len(r.buf)]
}

// Snapshot copies the samples, oldest first
func (r *Ring) Snapshot() []models.Sample {
	out := make([]models.Sample, r.size)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Reset drops every sample
func (r *Ring) Reset() {
	clear(r.buf)
	r.start = 0
	r.size = 0
}
