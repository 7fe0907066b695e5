package combat

import (
	"fmt"
	"math"
)

// HP returns the instance's current hit points, initialising them from the
// character's life on first reference.
//
// Postcondition: Returns ErrUnknownInstance for an absent id.
func (s *Session) HP(id string) (int, error) {
	cbt, ok := s.Combatant(id)
	if !ok {
		return 0, fmt.Errorf("instance %q: %w", id, ErrUnknownInstance)
	}
	return s.hpOf(cbt), nil
}

func (s *Session) hpOf(cbt *Combatant) int {
	hp, ok := s.hp[cbt.ID]
	if !ok {
		hp = cbt.MaxHP()
		s.hp[cbt.ID] = hp
	}
	return hp
}

// peekHP reads hit points without recording the lazy baseline.
func (s *Session) peekHP(cbt *Combatant) int {
	if hp, ok := s.hp[cbt.ID]; ok {
		return hp
	}
	return cbt.MaxHP()
}

// ApplyDamage subtracts amount from the instance's hit points, flooring at zero.
// Any instance may be targeted regardless of the cursor. Non-positive amounts are a no-op.
//
// Postcondition: 0 <= HP; returns the new HP or ErrUnknownInstance.
func (s *Session) ApplyDamage(id string, amount int) (int, error) {
	cbt, ok := s.Combatant(id)
	if !ok {
		return 0, fmt.Errorf("instance %q: %w", id, ErrUnknownInstance)
	}
	hp := s.hpOf(cbt)
	if amount <= 0 {
		return hp, nil
	}
	hp = max(0, hp-amount)
	s.hp[id] = hp
	return hp, nil
}

// ApplyHeal adds amount to the instance's hit points, capped at the character's
// life. When life is 0 the heal is uncapped but saturates at math.MaxInt.
// Non-positive amounts are a no-op.
//
// Postcondition: 0 <= HP, and HP <= MaxHP whenever MaxHP > 0; returns the new HP or ErrUnknownInstance.
func (s *Session) ApplyHeal(id string, amount int) (int, error) {
	cbt, ok := s.Combatant(id)
	if !ok {
		return 0, fmt.Errorf("instance %q: %w", id, ErrUnknownInstance)
	}
	hp := s.hpOf(cbt)
	if amount <= 0 {
		return hp, nil
	}
	maxHP := cbt.MaxHP()
	switch {
	case maxHP > 0 && amount >= maxHP-hp:
		hp = maxHP
	case maxHP > 0:
		hp += amount
	case amount > math.MaxInt-hp:
		hp = math.MaxInt
	default:
		hp += amount
	}
	s.hp[id] = hp
	return hp, nil
}
