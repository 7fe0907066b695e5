// Package character defines the campaign character record shared by the catalog and combat.
package character

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category classifies a character for display and roster grouping.
type Category string

const (
	CategoryPlayer  Category = "PLAYER"
	CategoryNPC     Category = "NPC"
	CategoryAlly    Category = "ALLY"
	CategoryMonster Category = "MONSTER"
	CategoryZombie  Category = "ZOMBIE"
)

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryPlayer, CategoryNPC, CategoryAlly, CategoryMonster, CategoryZombie}

// ErrInvalidCategory is returned when a category string is not recognised.
var ErrInvalidCategory = errors.New("invalid character category")

// ErrNameRequired is returned when a character has no name.
var ErrNameRequired = errors.New("character name is required")

// ErrNegativeLife is returned when a status records life below zero.
var ErrNegativeLife = errors.New("life must not be negative")

// ErrNotFound is returned when a character lookup yields no results.
var ErrNotFound = errors.New("character not found")

// ParseCategory converts s (case-insensitive) into a Category.
//
// Postcondition: Returns a valid Category or ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Hostile reports whether c is an opposing category (MONSTER or ZOMBIE).
func (c Category) Hostile() bool {
	return c == CategoryMonster || c == CategoryZombie
}

// Attributes holds the six base attribute scores.
type Attributes struct {
	Strength     int `json:"strength" yaml:"strength"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Perception   int `json:"perception" yaml:"perception"`
	Constitution int `json:"constitution" yaml:"constitution"`
	WillPower    int `json:"willPower" yaml:"will_power"`
}

// Status holds derived vitality figures. Life is the baseline hit points.
type Status struct {
	Life      int `json:"life" yaml:"life"`
	Endurance int `json:"endurance" yaml:"endurance"`
	Speed     int `json:"speed" yaml:"speed"`
	MaxLoad   int `json:"maxLoad" yaml:"max_load"`
}

// Skill is a character's rank in a catalog skill.
type Skill struct {
	SkillID string `json:"skillId" yaml:"skill_id"`
	Name    string `json:"name" yaml:"name"`
	Level   int    `json:"level" yaml:"level"`
}

// Trait is a quality or drawback taken by a character. Drawbacks carry a negative cost.
type Trait struct {
	TraitID string `json:"traitId" yaml:"trait_id"`
	Name    string `json:"name" yaml:"name"`
	Cost    int    `json:"cost" yaml:"cost"`
}

// IsDrawback reports whether t is a drawback rather than a quality.
func (t Trait) IsDrawback() bool { return t.Cost < 0 }

// Character is a campaign character record.
//
// ID, CreatedAt, and UpdatedAt are set by the persistence layer; a zero ID indicates an unsaved character.
type Character struct {
	ID       string   `json:"id" yaml:"-"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Age      *int     `json:"age,omitempty" yaml:"age"`
	Weight   *int     `json:"weight,omitempty" yaml:"weight"`
	Height   *int     `json:"height,omitempty" yaml:"height"`

	Attributes *Attributes `json:"attributes" yaml:"attributes"`
	Status     *Status     `json:"status" yaml:"status"`
	Skills     []Skill     `json:"skills" yaml:"skills"`
	Traits     []Trait     `json:"traits" yaml:"traits"`

	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Life returns the baseline hit points, or 0 when no status is recorded.
//
// Postcondition: Returns c.Status.Life if Status is set, else 0.
func (c *Character) Life() int {
	if c == nil || c.Status == nil {
		return 0
	}
	return c.Status.Life
}

// Qualities returns the traits with a non-negative cost.
func (c *Character) Qualities() []Trait {
	var out []Trait
	for _, t := range c.Traits {
		if !t.IsDrawback() {
			out = append(out, t)
		}
	}
	return out
}

// Drawbacks returns the traits with a negative cost.
func (c *Character) Drawbacks() []Trait {
	var out []Trait
	for _, t := range c.Traits {
		if t.IsDrawback() {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the fields required to persist a character.
//
// Postcondition: Returns nil, ErrNameRequired, ErrNegativeLife, or an error wrapping ErrInvalidCategory.
func (c *Character) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Category)
	}
	if c.Status != nil && c.Status.Life < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeLife, c.Status.Life)
	}
	return nil
}
