// Package metrics exposes the live session as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pingclock/internal/models"
	"pingclock/internal/monitor"
)

const prefix = "pingclock_"

var (
	runningDesc = prometheus.NewDesc(prefix+"running", "Whether a sampling session is active (1) or not (0)", nil, nil)
	latencyDesc = prometheus.NewDesc(prefix+"latency_seconds", "Latency of the most recent successful probe", []string{"host"}, nil)
	historyDesc = prometheus.NewDesc(prefix+"history_samples", "Number of samples held in the live history", nil, nil)
)

// Source provides the live session state
type Source interface {
	Snapshot() monitor.Snapshot
}

// Collector reports the session gauges on every scrape and counts probe
// outcomes as a sampler observer.
type Collector struct {
	source Source
	probes *prometheus.CounterVec
}

var (
	_ prometheus.Collector = (*Collector)(nil)
	_ models.Observer      = (*Collector)(nil)
)

// New creates a collector reading from source
func New(source Source) *Collector {
	return &Collector{
		source: source,
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "probes_total",
				Help: "Probes performed, by outcome (ok, resolve, timeout, io)",
			},
			[]string{"outcome"},
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- runningDesc
	ch <- latencyDesc
	ch <- historyDesc
	c.probes.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Snapshot()

	running := 0.0
	if snap.Running {
		running = 1
	}
	ch <- prometheus.MustNewConstMetric(runningDesc, prometheus.GaugeValue, running)
	ch <- prometheus.MustNewConstMetric(historyDesc, prometheus.GaugeValue, float64(len(snap.History)))

	// absent latency is not reported as zero
	if snap.Running && snap.LatestOK {
		ch <- prometheus.MustNewConstMetric(latencyDesc, prometheus.GaugeValue, snap.Latest.Seconds(), snap.Host)
	}

	c.probes.Collect(ch)
}

func (c *Collector) SessionStarted(models.Session) {}

func (c *Collector) SampleRecorded(_ models.Session, s models.Sample) {
	outcome := "ok"
	if !s.OK {
		outcome = s.Failure.String()
	}
	c.probes.WithLabelValues(outcome).Inc()
}

func (c *Collector) SessionStopped(models.Session) {}
