package database

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"pingclock/internal/models"
)

// DefaultWriterBuffer is the number of pending journal events held in memory
const DefaultWriterBuffer = 100

type eventKind int

const (
	eventStarted eventKind = iota
	eventSample
	eventStopped
)

type event struct {
	kind    eventKind
	session models.Session
	sample  models.Sample
}

// Writer feeds sampler events into a journal from a single goroutine.
// It implements models.Observer and never blocks the sampler: when the
// buffer is full the event is dropped.
type Writer struct {
	journal models.Journal
	events  chan event
	dropped atomic.Int64
}

var _ models.Observer = (*Writer)(nil)

// NewWriter creates a writer with room for buffer pending events
func NewWriter(j models.Journal, buffer int) *Writer {
	if buffer <= 0 {
		buffer = DefaultWriterBuffer
	}
	return &Writer{
		journal: j,
		events:  make(chan event, buffer),
	}
}

func (w *Writer) SessionStarted(s models.Session) {
	w.enqueue(event{kind: eventStarted, session: s})
}

func (w *Writer) SampleRecorded(s models.Session, sample models.Sample) {
	w.enqueue(event{kind: eventSample, session: s, sample: sample})
}

func (w *Writer) SessionStopped(s models.Session) {
	w.enqueue(event{kind: eventStopped, session: s})
}

// Dropped reports how many events were discarded because the buffer was full
func (w *Writer) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Writer) enqueue(ev event) {
	select {
	case w.events <- ev:
	default:
		w.dropped.Add(1)
		log.Warnf("Journal buffer full, dropping %s event for session %s", ev.kind, ev.session.ID)
	}
}

// Run writes queued events until ctx is done, then flushes what is
// already queued.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case ev := <-w.events:
			w.write(ev)
		}
	}
}

func (w *Writer) drain() {
	for {
		select {
		case ev := <-w.events:
			w.write(ev)
		default:
			return
		}
	}
}

func (w *Writer) write(ev event) {
	var err error
	switch ev.kind {
	case eventStarted:
		err = w.journal.SaveSession(ev.session)
	case eventSample:
		err = w.journal.SaveSample(ev.session.ID, ev.sample)
	case eventStopped:
		err = w.journal.EndSession(ev.session.ID, ev.session.StoppedAt)
	}
	if err != nil {
		log.Errorf("Failed to write %s event to journal: %v", ev.kind, err)
	}
}

func (k eventKind) String() string {
	switch k {
	case eventStarted:
		return "start"
	case eventSample:
		return "sample"
	default:
		return "stop"
	}
}
