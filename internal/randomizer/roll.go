package randomizer

import (
	"unicode/utf16"

	"github.com/cory-johannsen/campaign/internal/game/dice"
)

// Pick returns a uniformly chosen item. Item weights are ignored.
//
// Precondition: src must be non-nil.
// Postcondition: Returns ErrEmptyCategory when items is empty.
func Pick(items []Item, src dice.Source) (Item, error) {
	if len(items) == 0 {
		return Item{}, ErrEmptyCategory
	}
	return items[src.Intn(len(items))], nil
}

// Face maps an item id to a d20 face in [1, 20]. The same id always yields the
// same face so a rolled item lands on a stable side of the die.
func Face(itemID string) int {
	var h int32
	for _, u := range utf16.Encode([]rune(itemID)) {
		h = (h << 5) - h + int32(u)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return int(n%20) + 1
}
