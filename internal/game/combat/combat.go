// Package combat implements the encounter tracker: roster assembly, initiative
// assignment, turn order, and per-instance hit point bookkeeping.
package combat

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

// Phase is the encounter state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseInitiative
	PhaseActive
)

// String returns the phase label used in API payloads.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseInitiative:
		return "initiative"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// MinCombatants is the smallest roster that may leave setup.
const MinCombatants = 2

var (
	// ErrInvalidInitiative is returned when a negative initiative is supplied.
	ErrInvalidInitiative = errors.New("initiative must be >= 0")
	// ErrUnknownInstance is returned when an instance id is not in the roster.
	ErrUnknownInstance = errors.New("unknown combatant instance")
	// ErrIncompleteInitiative is returned when turn order is requested before every combatant has initiative.
	ErrIncompleteInitiative = errors.New("not every combatant has initiative")
	// ErrInsufficientCombatants is returned when leaving setup with fewer than MinCombatants.
	ErrInsufficientCombatants = errors.New("at least 2 combatants are required")
	// ErrWrongPhase is returned when an operation is invoked outside the phase that owns it.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
)

// Initiative is either unset or a non-negative value.
// The zero value is unset.
type Initiative struct {
	value int
	set   bool
}

// Unset returns an Initiative with no value.
func Unset() Initiative { return Initiative{} }

// InitiativeOf returns an Initiative holding v. It does not validate v.
func InitiativeOf(v int) Initiative { return Initiative{value: v, set: true} }

// Value returns the initiative and whether it has been set.
func (i Initiative) Value() (int, bool) { return i.value, i.set }

// IsSet reports whether a value has been assigned.
func (i Initiative) IsSet() bool { return i.set }

// MarshalJSON encodes an unset initiative as null.
func (i Initiative) MarshalJSON() ([]byte, error) {
	if !i.set {
		return []byte("null"), nil
	}
	return json.Marshal(i.value)
}

// UnmarshalJSON decodes null as unset.
func (i *Initiative) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Unset()
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding initiative: %w", err)
	}
	*i = InitiativeOf(v)
	return nil
}

// String returns "-" when unset.
func (i Initiative) String() string {
	if !i.set {
		return "-"
	}
	return fmt.Sprintf("%d", i.value)
}

// Combatant is one appearance of a character in an encounter. The same
// character may back several combatants.
type Combatant struct {
	// ID is unique within the session for its whole lifetime, across resets.
	ID string
	// Character is shared and never mutated by this package.
	Character  *character.Character
	Initiative Initiative

	// seq is the roster insertion index, used to break initiative ties.
	seq int
}

// Name returns the backing character's name.
func (c *Combatant) Name() string {
	if c.Character == nil {
		return ""
	}
	return c.Character.Name
}

// MaxHP returns the backing character's baseline life, 0 when none is recorded
// or the recorded value is negative.
func (c *Combatant) MaxHP() int { return max(0, c.Character.Life()) }
