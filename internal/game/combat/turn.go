package combat

// Current returns the combatant under the cursor, or false when there is none.
func (s *Session) Current() (*Combatant, bool) {
	if s.phase != PhaseActive || len(s.turnOrder) == 0 {
		return nil, false
	}
	return s.turnOrder[s.cursor], true
}

// Advance moves the cursor to the next combatant, wrapping to the first.
// Wrapping starts a new round. With an empty turn order Advance is a no-op.
//
// Precondition: phase is PhaseActive.
func (s *Session) Advance() error {
	if err := s.requirePhase(PhaseActive, "advance"); err != nil {
		return err
	}
	if len(s.turnOrder) == 0 {
		return nil
	}
	s.cursor = (s.cursor + 1) % len(s.turnOrder)
	if s.cursor == 0 {
		s.round++
	}
	return nil
}
