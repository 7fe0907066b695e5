package media

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMixerNotFound is returned when a mixer lookup yields no results.
var ErrMixerNotFound = errors.New("equalizer not found")

// MixerView is a copy-safe rendering of a mixer.
type MixerView struct {
	ID    string `json:"id"`
	Slots []Slot `json:"slots"`
}

type mixerEntry struct {
	mu    sync.Mutex
	mixer *Mixer
}

// Mixers holds per-client equalizers keyed by id. All methods are safe for concurrent use.
type Mixers struct {
	mu     sync.RWMutex
	byID   map[string]*mixerEntry
	slots  int
	logger *zap.Logger
}

// NewMixers creates an empty registry whose mixers have the given slot count.
//
// Precondition: slots > 0; logger must be non-nil.
func NewMixers(slots int, logger *zap.Logger) *Mixers {
	return &Mixers{byID: make(map[string]*mixerEntry), slots: slots, logger: logger}
}

// Create registers a new empty mixer.
func (r *Mixers) Create() MixerView {
	id := uuid.NewString()
	e := &mixerEntry{mixer: NewMixer(r.slots)}
	r.mu.Lock()
	r.byID[id] = e
	r.mu.Unlock()
	r.logger.Debug("equalizer created", zap.String("equalizer", id))
	return MixerView{ID: id, Slots: e.mixer.Slots()}
}

// Update runs fn against the mixer under its lock and returns the resulting view.
func (r *Mixers) Update(id string, fn func(*Mixer) error) (MixerView, error) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return MixerView{}, ErrMixerNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.mixer)
	return MixerView{ID: id, Slots: e.mixer.Slots()}, err
}

// View returns the mixer's current slots.
func (r *Mixers) View(id string) (MixerView, error) {
	return r.Update(id, func(*Mixer) error { return nil })
}

// Delete removes a mixer and reports whether it existed.
func (r *Mixers) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	delete(r.byID, id)
	return ok
}

// RemoveVideoEverywhere clears videoID from every mixer and returns the number of slots cleared.
func (r *Mixers) RemoveVideoEverywhere(videoID string) int {
	r.mu.RLock()
	entries := make([]*mixerEntry, 0, len(r.byID))
	for _, e := range r.byID {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		n += e.mixer.RemoveVideo(videoID)
		e.mu.Unlock()
	}
	if n > 0 {
		r.logger.Debug("video removed from equalizers", zap.String("video", videoID), zap.Int("slots", n))
	}
	return n
}
