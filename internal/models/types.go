package models

import (
	"context"
	"time"
)

// Prober performs one reachability probe against host.
// The returned duration is the round-trip time the prober measured itself,
// or zero when it has no better figure than the caller's wall clock.
// Implementations must honour ctx's deadline.
type Prober interface {
	Probe(ctx context.Context, host string) (time.Duration, error)
}

// Observer receives sampler lifecycle events in order: start, samples,
// stop. Callbacks run under the sampler's lock and must not call back into it.
type Observer interface {
	SessionStarted(s Session)
	SampleRecorded(s Session, sample Sample)
	SessionStopped(s Session)
}

// Journal defines the operations of the optional sample log
type Journal interface {
	SaveSession(s Session) error
	EndSession(id string, at time.Time) error
	SaveSample(sessionID string, sample Sample) error
	LatestSession() (Session, error)
	GetSession(id string) (Session, error)
	SessionSamples(id string, limit int) ([]Sample, error)
	PruneBefore(t time.Time) (int64, error)
	Close() error
}
