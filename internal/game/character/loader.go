package character

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout of a character seed file.
type seedFile struct {
	Characters []*Character `yaml:"characters"`
}

// LoadFromBytes parses a seed document and validates every character in it.
// Category names are matched case-insensitively.
//
// Postcondition: Returns all characters or an error naming the first invalid entry.
func LoadFromBytes(data []byte) ([]*Character, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing character YAML: %w", err)
	}
	for i, c := range f.Characters {
		c.Name = strings.TrimSpace(c.Name)
		if c.Category != "" {
			cat, err := ParseCategory(string(c.Category))
			if err != nil {
				return nil, fmt.Errorf("character %d (%q): %w", i, c.Name, err)
			}
			c.Category = cat
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("character %d (%q): %w", i, c.Name, err)
		}
	}
	return f.Characters, nil
}

// LoadFile reads and parses a seed file.
//
// Precondition: path must be a readable YAML file.
func LoadFile(path string) ([]*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	chars, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return chars, nil
}
