package combat

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

// Session is a single encounter. It is not safe for concurrent use; callers
// sharing a Session across goroutines must go through a Registry.
//
// Invariant: every rejected operation leaves the session unchanged.
type Session struct {
	phase     Phase
	roster    []*Combatant
	turnOrder []*Combatant
	cursor    int
	round     int
	hp        map[string]int

	nextSeq int
	issued  map[string]struct{}
	newID   func() string
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces the uuid generator used for instance ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// NewSession returns an empty session in PhaseSetup.
func NewSession(opts ...Option) *Session {
	s := &Session{
		phase:  PhaseSetup,
		hp:     make(map[string]int),
		issued: make(map[string]struct{}),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Roster returns the combatants in insertion order. The slice is a copy.
func (s *Session) Roster() []*Combatant { return slices.Clone(s.roster) }

// TurnOrder returns the frozen turn order; empty outside PhaseActive.
func (s *Session) TurnOrder() []*Combatant { return slices.Clone(s.turnOrder) }

// Cursor returns the index of the active combatant in the turn order.
func (s *Session) Cursor() int { return s.cursor }

// Round returns the 1-based round number while active, 0 otherwise.
func (s *Session) Round() int { return s.round }

// Combatant looks up an instance by id.
func (s *Session) Combatant(id string) (*Combatant, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.roster[i], true
}

func (s *Session) indexOf(id string) int {
	return slices.IndexFunc(s.roster, func(c *Combatant) bool { return c.ID == id })
}

func (s *Session) requirePhase(p Phase, op string) error {
	if s.phase != p {
		return fmt.Errorf("%s during %s: %w", op, s.phase, ErrWrongPhase)
	}
	return nil
}

func (s *Session) freshID() string {
	for {
		id := s.newID()
		if _, used := s.issued[id]; !used {
			s.issued[id] = struct{}{}
			return id
		}
	}
}

// AddCombatant appends a new instance of c with unset initiative.
//
// Precondition: c must be non-nil.
// Postcondition: Returns an id never before issued by this session, or ErrWrongPhase outside setup.
func (s *Session) AddCombatant(c *character.Character) (string, error) {
	if err := s.requirePhase(PhaseSetup, "add combatant"); err != nil {
		return "", err
	}
	cbt := &Combatant{ID: s.freshID(), Character: c, seq: s.nextSeq}
	s.nextSeq++
	s.roster = append(s.roster, cbt)
	return cbt.ID, nil
}

// RemoveCombatant removes the instance with id. Absent ids are a no-op.
//
// Postcondition: Returns ErrWrongPhase outside setup; otherwise nil.
func (s *Session) RemoveCombatant(id string) error {
	if err := s.requirePhase(PhaseSetup, "remove combatant"); err != nil {
		return err
	}
	if i := s.indexOf(id); i >= 0 {
		s.roster = slices.Delete(s.roster, i, i+1)
		delete(s.hp, id)
	}
	return nil
}

// ProceedToInitiative moves from setup to initiative assignment.
//
// Postcondition: Returns ErrInsufficientCombatants when the roster has fewer than MinCombatants.
func (s *Session) ProceedToInitiative() error {
	if err := s.requirePhase(PhaseSetup, "proceed to initiative"); err != nil {
		return err
	}
	if len(s.roster) < MinCombatants {
		return fmt.Errorf("roster has %d: %w", len(s.roster), ErrInsufficientCombatants)
	}
	s.phase = PhaseInitiative
	return nil
}

// Back returns from initiative assignment to setup. Assigned initiative values are kept.
func (s *Session) Back() error {
	if err := s.requirePhase(PhaseInitiative, "back"); err != nil {
		return err
	}
	s.phase = PhaseSetup
	return nil
}

// StartCombat computes and freezes the turn order and places the cursor on its first entry.
//
// Postcondition: On success phase is PhaseActive, cursor is 0, round is 1.
func (s *Session) StartCombat() error {
	if err := s.requirePhase(PhaseInitiative, "start combat"); err != nil {
		return err
	}
	order, err := s.ComputeTurnOrder()
	if err != nil {
		return err
	}
	s.turnOrder = order
	s.cursor = 0
	s.round = 1
	s.phase = PhaseActive
	return nil
}

// Reset discards roster, turn order, cursor, and hit points and returns to setup.
// Ids issued before the reset are never reissued.
func (s *Session) Reset() {
	s.phase = PhaseSetup
	s.roster = nil
	s.turnOrder = nil
	s.cursor = 0
	s.round = 0
	s.hp = make(map[string]int)
}
