package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pingclock/internal/models"
)

var errMissing = errors.New("session not found")

type fakeSource struct {
	sessions []models.Session
	samples  map[string][]models.Sample
}

func (f *fakeSource) LatestSession() (models.Session, error) {
	if len(f.sessions) == 0 {
		return models.Session{}, errMissing
	}
	return f.sessions[len(f.sessions)-1], nil
}

func (f *fakeSource) GetSession(id string) (models.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Session{}, errMissing
}

func (f *fakeSource) SessionSamples(id string, limit int) ([]models.Sample, error) {
	s := f.samples[id]
	if limit > 0 && len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s, nil
}

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mixedSamples() []models.Sample {
	return []models.Sample{
		models.Succeeded(start, 50*time.Millisecond),
		models.Succeeded(start.Add(time.Second), 150*time.Millisecond),
		models.Failed(start.Add(2*time.Second), models.FailureTimeout, errors.New("context deadline exceeded")),
		models.Succeeded(start.Add(3*time.Second), 320*time.Millisecond),
	}
}

func newSource() *fakeSource {
	return &fakeSource{
		sessions: []models.Session{
			{ID: "old", Host: "10.0.0.1", Interval: time.Second, StartedAt: start.Add(-time.Hour), StoppedAt: start.Add(-30 * time.Minute)},
			{ID: "new", Host: "Example.com", Interval: time.Second, StartedAt: start},
		},
		samples: map[string][]models.Sample{
			"old": {models.Succeeded(start.Add(-time.Hour), 10*time.Millisecond)},
			"new": mixedSamples(),
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	sess := models.Session{ID: "s1", Host: "example.com", Interval: 500 * time.Millisecond, StartedAt: start}
	writeSummary(&buf, sess, mixedSamples(), start.Add(time.Hour))
	out := buf.String()

	for _, want := range []string{
		"Generated: 2024-05-01 13:00:00",
		"Session:  s1",
		"Host:     example.com",
		"Interval: 500ms",
		"Stopped:  still running",
		"Samples:  4",
		"2024-05-01 12:00:00  50 ms       good",
		"2024-05-01 12:00:01  150 ms      warn",
		"2024-05-01 12:00:02  -           waiting  timeout: context deadline exceeded",
		"2024-05-01 12:00:03  320 ms      bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"Average", "Loss", "Jitter"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("summary contains statistic %q", unwanted)
		}
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	sess := models.Session{ID: "s1", Host: "h", StartedAt: start, StoppedAt: start.Add(time.Minute)}
	writeSummary(&buf, sess, nil, start)
	if !strings.Contains(buf.String(), "No samples recorded.") || !strings.Contains(buf.String(), "Stopped:  2024-05-01 12:01:00") {
		t.Errorf("summary = %s", buf.String())
	}
}

func TestGenerateReport(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		wantFiles []string
		skipFiles []string
	}{
		{
			name:      "latest session",
			wantFiles: []string{"live_example_com.png", "latency_example_com.png", "summary.txt"},
		},
		{
			name:      "one successful sample skips the time series",
			sessionID: "old",
			wantFiles: []string{"live_10_0_0_1.png", "summary.txt"},
			skipFiles: []string{"latency_10_0_0_1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(newSource())
			g.now = func() time.Time { return start.Add(2 * time.Hour) }
			out := t.TempDir()

			dir, err := g.GenerateReport(out, tt.sessionID)
			if err != nil {
				t.Fatalf("GenerateReport() error = %v", err)
			}
			if want := filepath.Join(out, "pingclock_report_2024-05-01_14-00-00"); dir != want {
				t.Errorf("dir = %q, want %q", dir, want)
			}
			for _, f := range tt.wantFiles {
				info, err := os.Stat(filepath.Join(dir, f))
				if err != nil || info.Size() == 0 {
					t.Errorf("%s missing or empty: %v", f, err)
				}
			}
			for _, f := range tt.skipFiles {
				if _, err := os.Stat(filepath.Join(dir, f)); err == nil {
					t.Errorf("%s written, want skipped", f)
				}
			}
		})
	}
}

func TestGenerateReportErrors(t *testing.T) {
	g := NewGenerator(&fakeSource{})
	if _, err := g.GenerateReport(t.TempDir(), ""); !errors.Is(err, errMissing) {
		t.Errorf("empty journal: err = %v", err)
	}

	g = NewGenerator(newSource())
	if _, err := g.GenerateReport(t.TempDir(), "nope"); !errors.Is(err, errMissing) {
		t.Errorf("unknown session: err = %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"www.baidu.com": "www_baidu_com",
		"Example.COM":   "example_com",
		"fe80::1%eth0":  "fe80__1_eth0",
		"192.168.1.1":   "192_168_1_1",
		"a/b\\c d":      "a_b_c_d",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
