package combat

// CombatantView is a copy-safe rendering of one combatant.
type CombatantView struct {
	InstanceID  string     `json:"instanceId"`
	CharacterID string     `json:"characterId"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Initiative  Initiative `json:"initiative"`
	CurrentHP   int        `json:"currentHp"`
	MaxHP       int        `json:"maxHp"`
	// Defeated is informational; a combatant at 0 HP keeps its place in the turn order.
	Defeated bool `json:"defeated"`
}

// View is a copy-safe rendering of a whole session.
type View struct {
	ID        string          `json:"id,omitempty"`
	Phase     string          `json:"phase"`
	Roster    []CombatantView `json:"roster"`
	TurnOrder []string        `json:"turnOrder"`
	Cursor    int             `json:"cursor"`
	Current   string          `json:"current,omitempty"`
	Round     int             `json:"round"`
	CanStart  bool            `json:"canStart"`
}

// Snapshot renders the session. It does not change session state.
func (s *Session) Snapshot() View {
	v := View{
		Phase:     s.phase.String(),
		Roster:    make([]CombatantView, 0, len(s.roster)),
		TurnOrder: make([]string, 0, len(s.turnOrder)),
		Cursor:    s.cursor,
		Round:     s.round,
		CanStart:  s.phase == PhaseInitiative && s.AllInitiativeSet(),
	}
	for _, cbt := range s.roster {
		hp := s.peekHP(cbt)
		cv := CombatantView{
			InstanceID: cbt.ID,
			Name:       cbt.Name(),
			Initiative: cbt.Initiative,
			CurrentHP:  hp,
			MaxHP:      cbt.MaxHP(),
			Defeated:   hp == 0,
		}
		if cbt.Character != nil {
			cv.CharacterID = cbt.Character.ID
			cv.Category = string(cbt.Character.Category)
		}
		v.Roster = append(v.Roster, cv)
	}
	for _, cbt := range s.turnOrder {
		v.TurnOrder = append(v.TurnOrder, cbt.ID)
	}
	if cur, ok := s.Current(); ok {
		v.Current = cur.ID
	}
	return v
}
