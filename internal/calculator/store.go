package calculator

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStoreFull       = errors.New("session limit reached")
)

// Store keeps sessions in memory. Every dispatch runs under the store lock, so
// transitions of a session are applied one at a time and in arrival order.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	max      int
	opts     SessionOptions
}

// NewStore returns a Store holding at most max sessions; max <= 0 means no limit.
func NewStore(max int, opts SessionOptions) *Store {
	if opts.Formatter == nil {
		opts.Formatter = defaultFormatter
	}
	return &Store{
		sessions: make(map[string]*Session),
		max:      max,
		opts:     opts,
	}
}

// Create starts a new empty session.
func (s *Store) Create() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return Snapshot{}, ErrStoreFull
	}
	sess := NewSession(uuid.NewString(), s.opts)
	s.sessions[sess.ID] = sess
	return sess.Snapshot(), nil
}

// Get returns the session's current snapshot.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return sess.Snapshot(), nil
}

// Press dispatches actions to the session in order.
func (s *Store) Press(id string, actions ...Action) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	for _, a := range actions {
		sess.Dispatch(a)
	}
	return sess.Snapshot(), nil
}

// Delete drops the session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Formatter returns the formatter sessions render with.
func (s *Store) Formatter() *Formatter { return s.opts.Formatter }

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Collector exposes the live session count to a prometheus registry.
func (s *Store) Collector() prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calculator_sessions",
		Help: "Number of live calculator sessions.",
	}, func() float64 {
		return float64(s.Len())
	})
}
