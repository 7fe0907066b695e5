package randomizer

import (
	"context"
	"fmt"
	"strings"
)

// ImportReport summarises a bulk import.
type ImportReport struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Message renders the report headline.
func (r ImportReport) Message() string {
	return fmt.Sprintf("import finished: %d category(ies) created, %d skipped", r.Created, r.Skipped)
}

// NameExists reports whether a category name is already taken.
type NameExists func(ctx context.Context, name string) (bool, error)

// Plan validates categories for import and returns the ones that may be created.
// Names and items are trimmed and blank items dropped. A category is skipped when
// it has no name, no items, more than maxItems items, or a name that exists already
// or repeats earlier in the batch. Each skip adds one message to the report.
//
// Precondition: maxItems > 0; exists must be non-nil.
// Postcondition: report.Skipped + len(accepted) == len(cats) unless an error is returned.
func Plan(ctx context.Context, cats []ImportCategory, maxItems int, exists NameExists) ([]ImportCategory, ImportReport, error) {
	report := ImportReport{Errors: []string{}}
	var accepted []ImportCategory
	seen := make(map[string]bool, len(cats))

	skip := func(format string, args ...any) {
		report.Errors = append(report.Errors, fmt.Sprintf(format, args...))
		report.Skipped++
	}

	for _, c := range cats {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			skip("category without a name skipped")
			continue
		}
		items := cleanItems(c.Items)
		if len(items) == 0 {
			skip("category %q skipped: no valid items", name)
			continue
		}
		if len(items) > maxItems {
			skip("category %q skipped: %d items (max %d)", name, len(items), maxItems)
			continue
		}
		if seen[name] {
			skip("category %q skipped: duplicated in import", name)
			continue
		}
		taken, err := exists(ctx, name)
		if err != nil {
			return nil, report, fmt.Errorf("checking category %q: %w", name, err)
		}
		if taken {
			skip("category %q already exists", name)
			continue
		}
		seen[name] = true
		accepted = append(accepted, ImportCategory{Name: name, Items: items})
	}
	return accepted, report, nil
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
