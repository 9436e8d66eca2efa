package monitor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"pingclock/internal/models"
	"pingclock/internal/ping"
)

// pingWorker probes the session host, then sleeps for the interval, until
// the session is cancelled
func (m *Monitor) pingWorker(ctx context.Context, sess models.Session) {
	defer m.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		// Immediate first ping
		m.performPing(ctx, sess)

		timer.Reset(sess.Interval)
		select {
		case <-ctx.Done():
			m.endOnCancel(sess)
			return
		case <-timer.C:
		}
	}
}

// performPing runs one probe and records its outcome
func (m *Monitor) performPing(ctx context.Context, sess models.Session) {
	if ctx.Err() != nil {
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	start := m.now()
	rtt, err := m.prober.Probe(probeCtx, sess.Host)
	end := m.now()
	cancel()

	var sample models.Sample
	if err != nil {
		sample = models.Failed(end, ping.Classify(err), err)
		log.Debugf("Probe of %s failed (%s): %v", sess.Host, sample.Failure, err)
	} else {
		latency := end.Sub(start)
		if m.latencyMode == LatencyReported && rtt > 0 {
			latency = rtt
		}
		sample = models.Succeeded(end, latency)
		log.Debugf("Probe of %s answered in %v", sess.Host, latency)
	}

	// Stop holds m.mu too, so observers never see a sample after the
	// session's stop event
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.record(sess.ID, sample) {
		return
	}
	for _, o := range m.observers {
		o.SampleRecorded(sess, sample)
	}
}

// endOnCancel closes the session when the owning context went away
// rather than through Stop
func (m *Monitor) endOnCancel(sess models.Session) {
	if m.ctx.Err() == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Snapshot().SessionID == sess.ID {
		m.stopLocked()
	}
}
