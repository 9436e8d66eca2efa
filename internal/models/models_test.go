package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name     string
		latency  time.Duration
		ok       bool
		expected Level
	}{
		{name: "no response", latency: 0, ok: false, expected: LevelWaiting},
		{name: "no response ignores latency", latency: 500 * time.Millisecond, ok: false, expected: LevelWaiting},
		{name: "fast", latency: 12 * time.Millisecond, ok: true, expected: LevelGood},
		{name: "just under warn", latency: 99 * time.Millisecond, ok: true, expected: LevelGood},
		{name: "warn boundary", latency: 100 * time.Millisecond, ok: true, expected: LevelWarn},
		{name: "just under bad", latency: 299 * time.Millisecond, ok: true, expected: LevelWarn},
		{name: "bad boundary", latency: 300 * time.Millisecond, ok: true, expected: LevelBad},
		{name: "very slow", latency: 4 * time.Second, ok: true, expected: LevelBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFor(tt.latency, tt.ok); got != tt.expected {
				t.Errorf("LevelFor(%v, %v) = %v, want %v", tt.latency, tt.ok, got, tt.expected)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	if got := Display(0, false); got != "waiting for response..." {
		t.Errorf("Display without latency = %q", got)
	}
	if got := Display(42*time.Millisecond+600*time.Microsecond, true); got != "42 ms" {
		t.Errorf("Display(42.6ms) = %q, want %q", got, "42 ms")
	}
}

func TestSampleJSON(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	ok, err := json.Marshal(Succeeded(at, 1500*time.Microsecond))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(ok), `"latency_ms":1.5`) {
		t.Errorf("successful sample JSON = %s, want latency_ms 1.5", ok)
	}
	if strings.Contains(string(ok), "failure") {
		t.Errorf("successful sample JSON should omit failure: %s", ok)
	}

	failed, err := json.Marshal(Failed(at, FailureResolve, errors.New("no such host")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"latency_ms":null`, `"failure":"resolve"`, `"error":"no such host"`} {
		if !strings.Contains(string(failed), want) {
			t.Errorf("failed sample JSON = %s, missing %s", failed, want)
		}
	}
}

func TestFailureRoundTrip(t *testing.T) {
	for _, f := range []Failure{FailureNone, FailureResolve, FailureTimeout, FailureIO} {
		if got := ParseFailure(f.String()); got != f {
			t.Errorf("ParseFailure(%q) = %v, want %v", f.String(), got, f)
		}
	}
}
