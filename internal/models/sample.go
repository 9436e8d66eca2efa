package models

import (
	"encoding/json"
	"time"
)

// Failure classifies why a probe produced no latency
type Failure int

const (
	FailureNone Failure = iota
	FailureResolve
	FailureTimeout
	FailureIO
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return ""
	case FailureResolve:
		return "resolve"
	case FailureTimeout:
		return "timeout"
	default:
		return "io"
	}
}

// ParseFailure is the inverse of Failure.String
func ParseFailure(s string) Failure {
	switch s {
	case "":
		return FailureNone
	case "resolve":
		return FailureResolve
	case "timeout":
		return FailureTimeout
	default:
		return FailureIO
	}
}

// Sample represents a single reachability measurement.
// Latency is only meaningful when OK is true.
type Sample struct {
	CapturedAt time.Time
	OK         bool
	Latency    time.Duration
	Failure    Failure
	Error      string
}

// Failed builds a sample for a probe that did not answer
func Failed(at time.Time, failure Failure, err error) Sample {
	s := Sample{CapturedAt: at, Failure: failure}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Succeeded builds a sample carrying a latency
func Succeeded(at time.Time, latency time.Duration) Sample {
	return Sample{CapturedAt: at, OK: true, Latency: latency}
}

// LatencyMs returns the latency in milliseconds and whether it is present
func (s Sample) LatencyMs() (float64, bool) {
	if !s.OK {
		return 0, false
	}
	return Milliseconds(s.Latency), true
}

// Level returns the display level of the sample
func (s Sample) Level() Level {
	return LevelFor(s.Latency, s.OK)
}

type sampleJSON struct {
	CapturedAt time.Time `json:"captured_at"`
	LatencyMs  *float64  `json:"latency_ms"`
	Failure    string    `json:"failure,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// MarshalJSON renders an absent latency as null
func (s Sample) MarshalJSON() ([]byte, error) {
	out := sampleJSON{
		CapturedAt: s.CapturedAt,
		Failure:    s.Failure.String(),
		Error:      s.Error,
	}
	if ms, ok := s.LatencyMs(); ok {
		out.LatencyMs = &ms
	}
	return json.Marshal(out)
}

// Milliseconds converts a duration to fractional milliseconds
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
