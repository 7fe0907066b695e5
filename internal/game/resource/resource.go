// Package resource holds the rulebook reference entries: skills and
// qualities/drawbacks that characters may draw from.
package resource

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SkillType classifies a skill.
type SkillType string

const (
	SkillRegular SkillType = "REGULAR"
	SkillSpecial SkillType = "SPECIAL"
)

var (
	// ErrNameRequired is returned when a resource has a blank name.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidSkillType is returned for a skill type other than REGULAR or SPECIAL.
	ErrInvalidSkillType = errors.New("invalid skill type")
	// ErrNotFound is returned when a resource lookup yields no results.
	ErrNotFound = errors.New("resource not found")
)

// ParseSkillType normalises s. An empty string selects SkillRegular.
//
// Postcondition: Returns ErrInvalidSkillType for unrecognised input.
func ParseSkillType(s string) (SkillType, error) {
	switch t := SkillType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return SkillRegular, nil
	case SkillRegular, SkillSpecial:
		return t, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidSkillType)
	}
}

// Skill is a rulebook skill.
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Type        SkillType `json:"type"`
	Page        *int      `json:"page"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate normalises and checks the skill.
func (s *Skill) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrNameRequired
	}
	t, err := ParseSkillType(string(s.Type))
	if err != nil {
		return err
	}
	s.Type = t
	s.Description = blankToNil(s.Description)
	return nil
}

// QualityDrawback is a rulebook quality (positive cost) or drawback (negative cost).
type QualityDrawback struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Cost        int       `json:"cost"`
	Page        *int      `json:"page"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsDrawback reports whether the entry costs negative points.
func (q QualityDrawback) IsDrawback() bool { return q.Cost < 0 }

// Validate normalises and checks the entry.
func (q *QualityDrawback) Validate() error {
	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" {
		return ErrNameRequired
	}
	q.Description = blankToNil(q.Description)
	return nil
}

// SkillPatch carries optional updates to a Skill.
type SkillPatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Type        *SkillType `json:"type"`
	Page        *int       `json:"page"`
}

// Apply returns a copy of s with the patch applied. A blank name is ignored.
func (p SkillPatch) Apply(s Skill) (Skill, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		s.Description = blankToNil(p.Description)
	}
	if p.Type != nil {
		t, err := ParseSkillType(string(*p.Type))
		if err != nil {
			return Skill{}, err
		}
		s.Type = t
	}
	if p.Page != nil {
		s.Page = p.Page
	}
	return s, nil
}

// QualityDrawbackPatch carries optional updates to a QualityDrawback.
type QualityDrawbackPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cost        *int    `json:"cost"`
	Page        *int    `json:"page"`
}

// Apply returns a copy of q with the patch applied. A blank name is ignored.
func (p QualityDrawbackPatch) Apply(q QualityDrawback) QualityDrawback {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		q.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		q.Description = blankToNil(p.Description)
	}
	if p.Cost != nil {
		q.Cost = *p.Cost
	}
	if p.Page != nil {
		q.Page = p.Page
	}
	return q
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
