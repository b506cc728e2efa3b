package application

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

// Restarter settles sessions out of the Restarting status after a delay.
// Each session has at most one pending settle; scheduling again replaces it
// and Cancel drops it. Close settles everything immediately so a shutdown
// never strands a session in Restarting.
type Restarter struct {
	mu       sync.Mutex
	sessions repo.SessionRepository
	delay    time.Duration
	logger   *logrus.Logger
	pending  map[int]*pendingRestart
	closed   bool
}

type pendingRestart struct {
	timer  *time.Timer
	active bool
}

func NewRestarter(sessions repo.SessionRepository, delay time.Duration, logger *logrus.Logger) *Restarter {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Restarter{
		sessions: sessions,
		delay:    delay,
		logger:   logger,
		pending:  make(map[int]*pendingRestart),
	}
}

// Schedule queues a settle for the session. active is the activity state the
// session should return to once the restart window elapses.
func (r *Restarter) Schedule(id int, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		// Shutting down: settle synchronously instead of queueing.
		r.settleLocked(id, active)
		return
	}
	if p, ok := r.pending[id]; ok {
		p.timer.Stop()
	}
	p := &pendingRestart{active: active}
	p.timer = time.AfterFunc(r.delay, func() { r.fire(id) })
	r.pending[id] = p
}

// Cancel drops a pending settle, if any. Used when a caller toggles the
// session directly and the stale restart must not overwrite that.
func (r *Restarter) Cancel(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pending[id]; ok {
		p.timer.Stop()
		delete(r.pending, id)
	}
}

// Close settles all pending restarts immediately. Further Schedule calls
// settle synchronously.
func (r *Restarter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for id, p := range r.pending {
		p.timer.Stop()
		r.settleLocked(id, p.active)
	}
	r.pending = make(map[int]*pendingRestart)
}

func (r *Restarter) fire(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[id]
	if !ok {
		// Cancelled between timer fire and lock acquisition.
		return
	}
	delete(r.pending, id)
	r.settleLocked(id, p.active)
}

func (r *Restarter) settleLocked(id int, active bool) {
	if err := r.sessions.SetActive(id, active); err != nil && r.logger != nil {
		r.logger.WithError(err).WithField("session_id", id).Warn("restart settle failed")
	}
}
