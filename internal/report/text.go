package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pingclock/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

func (g *Generator) generateTextReport(outputDir string, sess models.Session, samples []models.Sample) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	writeSummary(file, sess, samples, g.now())
	return file.Close()
}

// writeSummary lists the session header and every sample in capture order
func writeSummary(w io.Writer, sess models.Session, samples []models.Sample, generated time.Time) {
	fmt.Fprintf(w, "Latency Session Report\n")
	fmt.Fprintf(w, "Generated: %s\n\n", generated.Format(timeLayout))

	fmt.Fprintf(w, "Session:  %s\n", sess.ID)
	fmt.Fprintf(w, "Host:     %s\n", sess.Host)
	fmt.Fprintf(w, "Interval: %s\n", sess.Interval)
	fmt.Fprintf(w, "Started:  %s\n", sess.StartedAt.Format(timeLayout))
	if sess.StoppedAt.IsZero() {
		fmt.Fprintf(w, "Stopped:  still running\n")
	} else {
		fmt.Fprintf(w, "Stopped:  %s\n", sess.StoppedAt.Format(timeLayout))
	}
	fmt.Fprintf(w, "Samples:  %d\n\n", len(samples))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if len(samples) == 0 {
		fmt.Fprintln(w, "\nNo samples recorded.")
		return
	}

	fmt.Fprintf(w, "\n%-19s  %-10s  %-7s  %s\n", "TIME", "LATENCY", "LEVEL", "FAILURE")
	for _, s := range samples {
		latency := "-"
		if s.OK {
			latency = models.Display(s.Latency, true)
		}
		failure := s.Failure.String()
		if s.Error != "" {
			failure += ": " + s.Error
		}
		line := fmt.Sprintf("%-19s  %-10s  %-7s  %s", s.CapturedAt.Format(timeLayout), latency, s.Level(), failure)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
