package character

import "fmt"

// Patch is a partial update. Nil fields are left untouched; Attributes and Status
// replace the stored block wholesale, creating it if absent.
type Patch struct {
	Name       *string     `json:"name"`
	Category   *Category   `json:"category"`
	Age        *int        `json:"age"`
	Weight     *int        `json:"weight"`
	Height     *int        `json:"height"`
	Attributes *Attributes `json:"attributes"`
	Status     *Status     `json:"status"`
}

// Empty reports whether p would change nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Age == nil && p.Weight == nil &&
		p.Height == nil && p.Attributes == nil && p.Status == nil
}

// Apply returns a copy of c with p applied. An empty name or category in p is ignored.
//
// Precondition: c must be non-nil.
// Postcondition: c is not modified; the result passes Validate if c did and p's category is valid.
func (p Patch) Apply(c *Character) (*Character, error) {
	out := *c
	if p.Name != nil && *p.Name != "" {
		out.Name = *p.Name
	}
	if p.Category != nil && *p.Category != "" {
		cat, err := ParseCategory(string(*p.Category))
		if err != nil {
			return nil, err
		}
		out.Category = cat
	}
	if p.Age != nil {
		out.Age = p.Age
	}
	if p.Weight != nil {
		out.Weight = p.Weight
	}
	if p.Height != nil {
		out.Height = p.Height
	}
	if p.Attributes != nil {
		attrs := *p.Attributes
		out.Attributes = &attrs
	}
	if p.Status != nil {
		if p.Status.Life < 0 {
			return nil, fmt.Errorf("%w: got %d", ErrNegativeLife, p.Status.Life)
		}
		st := *p.Status
		out.Status = &st
	}
	return &out, nil
}
