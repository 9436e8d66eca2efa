package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pingclock/internal/history"
	"pingclock/internal/models"
)

// DefaultProbeTimeout bounds a single reachability probe
const DefaultProbeTimeout = 5 * time.Second

// Latency measurement modes
const (
	// LatencyWall times the whole probe, name resolution included
	LatencyWall = "wall"
	// LatencyReported prefers the round-trip time the prober measured
	LatencyReported = "reported"
)

var (
	ErrEmptyHost       = errors.New("host must not be empty")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// Monitor runs the sampling loop for one host at a time
type Monitor struct {
	ctx       context.Context
	prober    models.Prober
	state     *State
	observers []models.Observer

	timeout     time.Duration
	latencyMode string
	now         func() time.Time
	newID       func() string

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Monitor
type Option func(*Monitor)

// WithTimeout overrides the per-probe timeout
func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLatencyMode selects LatencyWall or LatencyReported
func WithLatencyMode(mode string) Option {
	return func(m *Monitor) {
		if mode == LatencyWall || mode == LatencyReported {
			m.latencyMode = mode
		}
	}
}

// WithObservers registers observers notified of every state change
func WithObservers(obs ...models.Observer) Option {
	return func(m *Monitor) {
		m.observers = append(m.observers, obs...)
	}
}

// WithHistorySize overrides the history capacity
func WithHistorySize(n int) Option {
	return func(m *Monitor) {
		m.state = NewState(n)
	}
}

// WithState makes the monitor publish into s, so readers can be wired
// before the monitor exists
func WithState(s *State) Option {
	return func(m *Monitor) {
		if s != nil {
			m.state = s
		}
	}
}

// WithNow overrides the clock
func WithNow(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Monitor. Any running loop ends when ctx is cancelled.
func New(ctx context.Context, prober models.Prober, opts ...Option) *Monitor {
	m := &Monitor{
		ctx:         ctx,
		prober:      prober,
		state:       NewState(history.DefaultCapacity),
		timeout:     DefaultProbeTimeout,
		latencyMode: LatencyWall,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins sampling host every interval. Calling Start while a session
// is running does nothing.
func (m *Monitor) Start(host string, interval time.Duration) error {
	if host == "" {
		return ErrEmptyHost
	}
	if interval <= 0 {
		return ErrInvalidInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ctx.Err(); err != nil {
		return err
	}

	sess := models.Session{
		ID:        m.newID(),
		Host:      host,
		Interval:  interval,
		StartedAt: m.now(),
	}
	if !m.state.begin(sess) {
		log.Debugf("Monitor already running, ignoring start for %s", host)
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	for _, o := range m.observers {
		o.SessionStarted(sess)
	}

	m.wg.Add(1)
	go m.pingWorker(ctx, sess)

	log.Infof("Monitor started. Pinging %s every %v (session %s)", host, interval, sess.ID)
	return nil
}

// Stop ends the running session and clears its history.
// A probe already in flight finishes in the background and is discarded.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Monitor) stopLocked() {
	// End the state first so a probe woken by the cancellation cannot
	// record into the closed session.
	sess, ok := m.state.end(m.now())
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if !ok {
		return
	}
	for _, o := range m.observers {
		o.SessionStopped(sess)
	}
	log.Infof("Monitor stopped (session %s)", sess.ID)
}

// Restart stops any running session and starts a new one
func (m *Monitor) Restart(host string, interval time.Duration) error {
	m.Stop()
	return m.Start(host, interval)
}

// Wait blocks until every sampling goroutine has returned
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// Snapshot returns a copy of the current state
func (m *Monitor) Snapshot() Snapshot {
	return m.state.Snapshot()
}

// Subscribe streams snapshots after every state change
func (m *Monitor) Subscribe() (<-chan Snapshot, func()) {
	return m.state.Subscribe()
}
