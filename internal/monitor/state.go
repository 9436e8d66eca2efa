package monitor

import (
	"sync"
	"time"

	"pingclock/internal/history"
	"pingclock/internal/models"
)

// Snapshot is an immutable copy of the session state
type Snapshot struct {
	SessionID string
	Host      string
	Interval  time.Duration
	StartedAt time.Time
	Running   bool
	Latest    time.Duration
	LatestOK  bool
	History   []models.Sample
}

// Level returns the display level of the latest reading
func (s Snapshot) Level() models.Level {
	return models.LevelFor(s.Latest, s.LatestOK)
}

// Session returns the session descriptor of the snapshot
func (s Snapshot) Session() models.Session {
	return models.Session{ID: s.SessionID, Host: s.Host, Interval: s.Interval, StartedAt: s.StartedAt}
}

// State holds the live session. The sampler loop is its only writer;
// everyone else reads copies through Snapshot or Subscribe.
type State struct {
	mu      sync.RWMutex
	session models.Session
	running bool
	latest  time.Duration
	ok      bool
	history *history.Ring

	subs    map[int]chan Snapshot
	nextSub int
}

// NewState creates an idle state with a history of the given capacity
func NewState(capacity int) *State {
	return &State{
		history: history.New(capacity),
		subs:    make(map[int]chan Snapshot),
	}
}

// Snapshot copies the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.session.ID,
		Host:      s.session.Host,
		Interval:  s.session.Interval,
		StartedAt: s.session.StartedAt,
		Running:   s.running,
		Latest:    s.latest,
		LatestOK:  s.ok,
		History:   s.history.Snapshot(),
	}
}

// begin opens a session. It reports false when one is already running.
func (s *State) begin(sess models.Session) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return false
	}
	s.session = sess
	s.running = true
	s.latest, s.ok = 0, false
	s.history.Reset()
	s.publishLocked()
	s.mu.Unlock()
	return true
}

// record appends a sample to the session it was measured in.
// Samples from a session that already ended are dropped.
func (s *State) record(sessionID string, sample models.Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.session.ID != sessionID {
		return false
	}
	s.history.Push(sample)
	s.latest, s.ok = sample.Latency, sample.OK
	s.publishLocked()
	return true
}

// end closes the running session, clearing latest and history.
// It returns the closed session and false when nothing was running.
func (s *State) end(at time.Time) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return models.Session{}, false
	}
	closed := s.session
	closed.StoppedAt = at

	s.running = false
	s.latest, s.ok = 0, false
	s.history.Reset()
	s.publishLocked()
	return closed, true
}

// Subscribe returns a channel receiving a snapshot after every change.
// A subscriber that falls behind misses intermediate snapshots but always
// gets the most recent one.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

func (s *State) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
