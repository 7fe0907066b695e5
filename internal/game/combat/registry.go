package combat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a registry lookup yields no session.
var ErrSessionNotFound = errors.New("combat session not found")

type entry struct {
	mu      sync.Mutex
	session *Session
	created time.Time
	touched time.Time
}

// Summary describes a registered session without its full state.
type Summary struct {
	ID         string    `json:"id"`
	Phase      string    `json:"phase"`
	Combatants int       `json:"combatants"`
	CreatedAt  time.Time `json:"createdAt"`
	TouchedAt  time.Time `json:"touchedAt"`
}

// Registry owns live sessions keyed by id and serialises access to each one.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistry creates an empty Registry.
//
// Precondition: logger must be non-nil.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		logger:   logger,
		now:      time.Now,
	}
}

// Create registers a new empty session and returns its view.
//
// Postcondition: The returned view's ID is registered and its phase is setup.
func (r *Registry) Create() View {
	id := uuid.NewString()
	now := r.now()
	e := &entry{session: NewSession(), created: now, touched: now}

	r.mu.Lock()
	r.sessions[id] = e
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info("combat session created",
		zap.String("session", id),
		zap.Int("active_sessions", count),
	)
	v := e.session.Snapshot()
	v.ID = id
	return v
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Update runs fn against the session while holding its lock and returns the
// resulting view. The view is returned even when fn fails.
//
// Postcondition: Returns ErrSessionNotFound for an unknown id, otherwise fn's error.
func (r *Registry) Update(id string, fn func(*Session) error) (View, error) {
	e, err := r.lookup(id)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	fnErr := fn(e.session)
	e.touched = r.now()
	if fnErr != nil {
		r.logger.Debug("combat operation rejected",
			zap.String("session", id),
			zap.String("phase", e.session.Phase().String()),
			zap.Error(fnErr),
		)
	}
	v := e.session.Snapshot()
	v.ID = id
	return v, fnErr
}

// View returns a snapshot of the session.
func (r *Registry) View(id string) (View, error) {
	e, err := r.lookup(id)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.session.Snapshot()
	v.ID = id
	return v, nil
}

// Delete removes the session and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		r.logger.Info("combat session deleted", zap.String("session", id))
	}
	return ok
}

// List returns a summary of every session, oldest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	entries := make(map[string]*entry, len(r.sessions))
	for id, e := range r.sessions {
		entries[id] = e
	}
	r.mu.RUnlock()

	out := make([]Summary, 0, len(entries))
	for id, e := range entries {
		e.mu.Lock()
		out = append(out, Summary{
			ID:         id,
			Phase:      e.session.Phase().String(),
			Combatants: len(e.session.roster),
			CreatedAt:  e.created,
			TouchedAt:  e.touched,
		})
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune deletes sessions untouched for longer than idle and returns how many were removed.
//
// Precondition: idle > 0.
func (r *Registry) Prune(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("pruned idle combat sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", len(r.sessions)),
		)
	}
	return removed
}

// RunPruner calls Prune every interval until ctx is cancelled.
//
// Precondition: interval > 0 and idle > 0.
func (r *Registry) RunPruner(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune(idle)
		}
	}
}
