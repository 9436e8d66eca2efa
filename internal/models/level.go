package models

import (
	"fmt"
	"time"
)

// Latency thresholds for the colour-coded display
const (
	WarnThreshold = 100 * time.Millisecond
	BadThreshold  = 300 * time.Millisecond
)

// Level is the colour class of a latency reading
type Level int

const (
	LevelWaiting Level = iota
	LevelGood
	LevelWarn
	LevelBad
)

// LevelFor classifies a latency. ok=false means no response.
func LevelFor(latency time.Duration, ok bool) Level {
	switch {
	case !ok:
		return LevelWaiting
	case latency < WarnThreshold:
		return LevelGood
	case latency < BadThreshold:
		return LevelWarn
	default:
		return LevelBad
	}
}

func (l Level) String() string {
	switch l {
	case LevelGood:
		return "good"
	case LevelWarn:
		return "warn"
	case LevelBad:
		return "bad"
	default:
		return "waiting"
	}
}

// MarshalText lets Level appear as a string in JSON
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Display formats the latest reading the way the live view shows it
func Display(latency time.Duration, ok bool) string {
	if !ok {
		return "waiting for response..."
	}
	return fmt.Sprintf("%d ms", latency.Milliseconds())
}
