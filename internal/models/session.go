package models

import "time"

// Session identifies one start..stop run of the sampler
type Session struct {
	ID        string        `json:"id"`
	Host      string        `json:"host"`
	Interval  time.Duration `json:"-"`
	StartedAt time.Time     `json:"started_at"`
	StoppedAt time.Time     `json:"stopped_at"`
}

// IntervalMs returns the tick interval in whole milliseconds
func (s Session) IntervalMs() int64 {
	return s.Interval.Milliseconds()
}
