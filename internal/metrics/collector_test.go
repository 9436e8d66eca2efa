package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"pingclock/internal/models"
	"pingclock/internal/monitor"
)

type staticSource struct {
	snap monitor.Snapshot
}

func (s staticSource) Snapshot() monitor.Snapshot { return s.snap }

func TestCollectorGauges(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		snap monitor.Snapshot
		want string
	}{
		{
			name: "idle",
			snap: monitor.Snapshot{},
			want: `
# HELP pingclock_history_samples Number of samples held in the live history
# TYPE pingclock_history_samples gauge
pingclock_history_samples 0
# HELP pingclock_running Whether a sampling session is active (1) or not (0)
# TYPE pingclock_running gauge
pingclock_running 0
`,
		},
		{
			name: "latest present",
			snap: monitor.Snapshot{
				Host:     "example.com",
				Running:  true,
				Latest:   42 * time.Millisecond,
				LatestOK: true,
				History:  []models.Sample{models.Succeeded(now, 42*time.Millisecond)},
			},
			want: `
# HELP pingclock_history_samples Number of samples held in the live history
# TYPE pingclock_history_samples gauge
pingclock_history_samples 1
# HELP pingclock_latency_seconds Latency of the most recent successful probe
# TYPE pingclock_latency_seconds gauge
pingclock_latency_seconds{host="example.com"} 0.042
# HELP pingclock_running Whether a sampling session is active (1) or not (0)
# TYPE pingclock_running gauge
pingclock_running 1
`,
		},
		{
			name: "latest absent",
			snap: monitor.Snapshot{
				Host:    "example.com",
				Running: true,
				History: []models.Sample{models.Failed(now, models.FailureTimeout, errors.New("timeout"))},
			},
			want: `
# HELP pingclock_history_samples Number of samples held in the live history
# TYPE pingclock_history_samples gauge
pingclock_history_samples 1
# HELP pingclock_running Whether a sampling session is active (1) or not (0)
# TYPE pingclock_running gauge
pingclock_running 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(staticSource{tt.snap})
			err := testutil.CollectAndCompare(c, strings.NewReader(tt.want),
				"pingclock_running", "pingclock_latency_seconds", "pingclock_history_samples")
			if err != nil {
				t.Error(err)
			}
		})
	}
}

func TestCollectorCountsOutcomes(t *testing.T) {
	c := New(staticSource{})
	now := time.Now()
	sess := models.Session{ID: "s"}

	c.SampleRecorded(sess, models.Succeeded(now, time.Millisecond))
	c.SampleRecorded(sess, models.Succeeded(now, time.Millisecond))
	c.SampleRecorded(sess, models.Failed(now, models.FailureResolve, errors.New("no such host")))
	c.SampleRecorded(sess, models.Failed(now, models.FailureTimeout, errors.New("timeout")))

	tests := map[string]float64{"ok": 2, "resolve": 1, "timeout": 1, "io": 0}
	for outcome, want := range tests {
		if got := testutil.ToFloat64(c.probes.WithLabelValues(outcome)); got != want {
			t.Errorf("probes_total{outcome=%q} = %v, want %v", outcome, got, want)
		}
	}

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if n, err := testutil.GatherAndCount(reg, "pingclock_probes_total"); err != nil || n != 4 {
		t.Errorf("GatherAndCount() = %d, %v, want 4 series", n, err)
	}
}
