package randomizer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ImportCategory is one category of a bulk import before validation.
type ImportCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ParseCSV reads a column-oriented table: the first row names the categories
// and each following row contributes one item per column. Columns with a blank
// header are dropped without shifting the remaining columns.
//
// Postcondition: Returns ErrInvalidCSV when fewer than two rows are present or
// every header is blank.
func ParseCSV(r io.Reader) ([]ImportCategory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrInvalidCSV
	}

	var out []ImportCategory
	for col, name := range rows[0] {
		if isBlank(name) {
			continue
		}
		cat := ImportCategory{Name: name}
		for _, row := range rows[1:] {
			if col < len(row) && !isBlank(row[col]) {
				cat.Items = append(cat.Items, row[col])
			}
		}
		out = append(out, cat)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no category names in header: %w", ErrInvalidCSV)
	}
	return out, nil
}
