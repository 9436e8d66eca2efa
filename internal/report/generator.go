// Package report renders a journaled session into static files.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"pingclock/internal/models"
)

// Source is the read side of the journal
type Source interface {
	LatestSession() (models.Session, error)
	GetSession(id string) (models.Session, error)
	SessionSamples(id string, limit int) ([]models.Sample, error)
}

var errNotEnoughData = errors.New("not enough successful samples")

// Generator creates static images and a text listing for one session
type Generator struct {
	source Source
	now    func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(source Source) *Generator {
	return &Generator{source: source, now: time.Now}
}

// GenerateReport writes the report of sessionID, or of the latest session
// when sessionID is empty, into a new directory under outputDir and
// returns that directory.
func (g *Generator) GenerateReport(outputDir, sessionID string) (string, error) {
	sess, err := g.session(sessionID)
	if err != nil {
		return "", err
	}
	samples, err := g.source.SessionSamples(sess.ID, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load samples: %w", err)
	}

	timestamp := g.now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("pingclock_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := generateLiveChart(reportDir, sess, samples); err != nil {
		log.Errorf("Failed to generate live chart: %v", err)
	}

	if err := generateLatencyChart(reportDir, sess, samples); err != nil {
		if errors.Is(err, errNotEnoughData) {
			log.Warnf("Skipping latency chart: %v", err)
		} else {
			log.Errorf("Failed to generate latency chart: %v", err)
		}
	}

	if err := g.generateTextReport(reportDir, sess, samples); err != nil {
		return reportDir, fmt.Errorf("failed to generate text report: %w", err)
	}

	log.Infof("Report for session %s generated in: %s", sess.ID, reportDir)
	return reportDir, nil
}

func (g *Generator) session(id string) (models.Session, error) {
	if id == "" {
		sess, err := g.source.LatestSession()
		if err != nil {
			return sess, fmt.Errorf("no session to report: %w", err)
		}
		return sess, nil
	}
	sess, err := g.source.GetSession(id)
	if err != nil {
		return sess, fmt.Errorf("session %s: %w", id, err)
	}
	return sess, nil
}
