package combat

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cory-johannsen/campaign/internal/game/dice"
)

// SetInitiative assigns value to the instance, overwriting any prior value.
//
// Precondition: phase is PhaseInitiative.
// Postcondition: Returns ErrInvalidInitiative for value < 0, ErrUnknownInstance for an absent id.
func (s *Session) SetInitiative(id string, value int) error {
	if err := s.requirePhase(PhaseInitiative, "set initiative"); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("got %d: %w", value, ErrInvalidInitiative)
	}
	cbt, ok := s.Combatant(id)
	if !ok {
		return fmt.Errorf("instance %q: %w", id, ErrUnknownInstance)
	}
	cbt.Initiative = InitiativeOf(value)
	return nil
}

// RollInitiative assigns a d20 roll to every combatant whose initiative is unset
// and returns the number of combatants rolled for.
//
// Precondition: phase is PhaseInitiative; src must be non-nil.
func (s *Session) RollInitiative(src dice.Source) (int, error) {
	if err := s.requirePhase(PhaseInitiative, "roll initiative"); err != nil {
		return 0, err
	}
	n := 0
	for _, cbt := range s.roster {
		if !cbt.Initiative.IsSet() {
			cbt.Initiative = InitiativeOf(dice.D20(src))
			n++
		}
	}
	return n, nil
}

// AllInitiativeSet reports whether every roster instance holds a non-negative initiative.
func (s *Session) AllInitiativeSet() bool {
	for _, cbt := range s.roster {
		v, ok := cbt.Initiative.Value()
		if !ok || v < 0 {
			return false
		}
	}
	return true
}

// ComputeTurnOrder derives the turn order without changing session state.
// Highest initiative acts first; ties keep roster insertion order.
//
// Postcondition: Returns ErrIncompleteInitiative unless AllInitiativeSet.
func (s *Session) ComputeTurnOrder() ([]*Combatant, error) {
	if !s.AllInitiativeSet() {
		return nil, ErrIncompleteInitiative
	}
	order := slices.Clone(s.roster)
	slices.SortStableFunc(order, func(a, b *Combatant) int {
		av, _ := a.Initiative.Value()
		bv, _ := b.Initiative.Value()
		if c := cmp.Compare(bv, av); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return order, nil
}
