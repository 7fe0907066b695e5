package combat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(t *testing.T) (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(zaptest.NewLogger(t))
	r.now = clock.Now
	return r, clock
}

func TestRegistry_CreateAndView(t *testing.T) {
	r, _ := newTestRegistry(t)
	v := r.Create()
	require.NotEmpty(t, v.ID)
	assert.Equal(t, "setup", v.Phase)
	assert.Equal(t, 1, r.Len())

	got, err := r.View(v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	_, err = r.View("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_UpdateReturnsViewOnError(t *testing.T) {
	r, _ := newTestRegistry(t)
	id := r.Create().ID
	hero := &character.Character{ID: "h", Name: "Hero", Category: character.CategoryPlayer}

	v, err := r.Update(id, func(s *Session) error {
		_, err := s.AddCombatant(hero)
		return err
	})
	require.NoError(t, err)
	require.Len(t, v.Roster, 1)

	v, err = r.Update(id, func(s *Session) error { return s.ProceedToInitiative() })
	assert.ErrorIs(t, err, ErrInsufficientCombatants)
	assert.Equal(t, id, v.ID)
	assert.Equal(t, "setup", v.Phase)
	assert.Len(t, v.Roster, 1)

	_, err = r.Update("missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Delete(t *testing.T) {
	r, _ := newTestRegistry(t)
	id := r.Create().ID
	assert.True(t, r.Delete(id))
	assert.False(t, r.Delete(id))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ListOldestFirst(t *testing.T) {
	r, clock := newTestRegistry(t)
	first := r.Create().ID
	clock.Advance(time.Minute)
	second := r.Create().ID

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)
	assert.Equal(t, 0, list[0].Combatants)
}

func TestRegistry_PruneIdle(t *testing.T) {
	r, clock := newTestRegistry(t)
	stale := r.Create().ID
	clock.Advance(30 * time.Minute)
	fresh := r.Create().ID
	clock.Advance(45 * time.Minute)

	// touching refreshes the idle timer
	_, err := r.Update(fresh, func(*Session) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, r.Prune(time.Hour))
	_, err = r.View(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.View(fresh)
	assert.NoError(t, err)
}

func TestRegistry_RunPrunerStopsOnCancel(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunPruner(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}

func TestRegistry_ConcurrentUpdatesSerialised(t *testing.T) {
	r, _ := newTestRegistry(t)
	id := r.Create().ID
	c := &character.Character{ID: "g", Name: "Goblin", Category: character.CategoryMonster}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Update(id, func(s *Session) error {
				_, err := s.AddCombatant(c)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := r.View(id)
	require.NoError(t, err)
	assert.Len(t, v.Roster, 50)
}
