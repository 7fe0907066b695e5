// Package randomizer manages random tables: named categories of items that can
// be rolled uniformly, imported in bulk from CSV, and recorded in a roll history.
package randomizer

import (
	"errors"
	"time"
)

// MaxItemsPerCategory is the default item cap for a single category.
const MaxItemsPerCategory = 20

var (
	// ErrNameRequired is returned when a category or item has a blank name.
	ErrNameRequired = errors.New("name is required")
	// ErrCategoryNotFound is returned when a category lookup yields no results.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrItemNotFound is returned when an item lookup yields no results.
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryExists is returned when a category name is already taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrCategoryFull is returned when adding an item to a category at its cap.
	ErrCategoryFull = errors.New("category is full")
	// ErrEmptyCategory is returned when rolling a category with no items.
	ErrEmptyCategory = errors.New("no items found in this category")
	// ErrRollRequired is returned when a history entry lacks its category or item.
	ErrRollRequired = errors.New("categoryId and itemId are required")
	// ErrInvalidCSV is returned when CSV input lacks a header and at least one item row.
	ErrInvalidCSV = errors.New("csv must have a header row and at least one item row")
)

// Item is one entry of a category. Weight and Rarity are descriptive only and
// do not influence rolls.
type Item struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Weight      *float64  `json:"weight"`
	Rarity      *string   `json:"rarity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is a named random table.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HistoryEntry records one roll.
type HistoryEntry struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Item         Item      `json:"item"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RollResult is a picked item together with its display face.
type RollResult struct {
	Item  Item          `json:"item"`
	Face  int           `json:"face"`
	Entry *HistoryEntry `json:"history,omitempty"`
}
