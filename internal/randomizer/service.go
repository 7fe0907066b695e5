package randomizer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/game/dice"
)

// Store persists categories, items, and roll history.
type Store interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CategoryExists(ctx context.Context, name string) (bool, error)
	CreateCategory(ctx context.Context, name string, description *string) (*Category, error)
	CreateCategoryWithItems(ctx context.Context, name string, items []string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name string, description *string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListItems(ctx context.Context, categoryID string) ([]Item, error)
	CreateItem(ctx context.Context, item Item) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	RecordRoll(ctx context.Context, categoryID, itemID string) (*HistoryEntry, error)
	History(ctx context.Context, categoryID string, limit int) ([]HistoryEntry, error)
	ClearHistory(ctx context.Context, categoryID string) (int64, error)
}

// Service applies random table rules on top of a Store.
type Service struct {
	store        Store
	src          dice.Source
	logger       *zap.Logger
	maxItems     int
	historyLimit int
}

// NewService creates a Service.
//
// Precondition: store, src, and logger must be non-nil; maxItems and historyLimit > 0.
func NewService(store Store, src dice.Source, logger *zap.Logger, maxItems, historyLimit int) *Service {
	return &Service{
		store:        store,
		src:          src,
		logger:       logger,
		maxItems:     maxItems,
		historyLimit: historyLimit,
	}
}

// MaxItems returns the per-category item cap.
func (s *Service) MaxItems() int { return s.maxItems }

// ListCategories returns every category with its items, newest first.
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.store.ListCategories(ctx)
}

// GetCategory returns a category with its items or ErrCategoryNotFound.
func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.store.GetCategory(ctx, id)
}

// CreateCategory creates an empty category.
//
// Postcondition: Returns ErrNameRequired for a blank name or ErrCategoryExists on a duplicate.
func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.store.CreateCategory(ctx, name, blankToNil(description))
}

// UpdateCategory renames a category and replaces its description.
func (s *Service) UpdateCategory(ctx context.Context, id, name string, description *string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.store.UpdateCategory(ctx, id, name, blankToNil(description))
}

// DeleteCategory removes a category together with its items and history.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}

// ListItems returns the items of a category.
func (s *Service) ListItems(ctx context.Context, categoryID string) ([]Item, error) {
	return s.store.ListItems(ctx, categoryID)
}

// AddItem appends an item to an existing category.
//
// Postcondition: Returns ErrNameRequired, ErrCategoryNotFound, or ErrCategoryFull
// without writing anything.
func (s *Service) AddItem(ctx context.Context, item Item) (*Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrNameRequired
	}
	cat, err := s.store.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return nil, err
	}
	if len(cat.Items) >= s.maxItems {
		return nil, fmt.Errorf("category %q has %d items: %w", cat.Name, len(cat.Items), ErrCategoryFull)
	}
	item.Description = blankToNil(item.Description)
	item.Rarity = blankToNil(item.Rarity)
	return s.store.CreateItem(ctx, item)
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.store.DeleteItem(ctx, id)
}

// Import validates and creates categories in bulk. Individual category failures
// are reported and skipped; only a failing existence check aborts the import.
func (s *Service) Import(ctx context.Context, cats []ImportCategory) (ImportReport, error) {
	accepted, report, err := Plan(ctx, cats, s.maxItems, s.store.CategoryExists)
	if err != nil {
		return report, err
	}
	for _, c := range accepted {
		if _, err := s.store.CreateCategoryWithItems(ctx, c.Name, c.Items); err != nil {
			s.logger.Warn("import category failed", zap.String("category", c.Name), zap.Error(err))
			report.Errors = append(report.Errors, fmt.Sprintf("failed to create category %q", c.Name))
			report.Skipped++
			continue
		}
		report.Created++
	}
	s.logger.Info("randomizer import finished",
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// Roll picks an item uniformly from the category and records it in the history.
//
// Postcondition: Returns ErrEmptyCategory when the category has no items.
func (s *Service) Roll(ctx context.Context, categoryID string) (RollResult, error) {
	items, err := s.store.ListItems(ctx, categoryID)
	if err != nil {
		return RollResult{}, err
	}
	item, err := Pick(items, s.src)
	if err != nil {
		return RollResult{}, err
	}
	res := RollResult{Item: item, Face: Face(item.ID)}
	entry, err := s.store.RecordRoll(ctx, categoryID, item.ID)
	if err != nil {
		return RollResult{}, fmt.Errorf("recording roll: %w", err)
	}
	res.Entry = entry
	s.logger.Debug("randomizer roll",
		zap.String("category", categoryID),
		zap.String("item", item.Name),
		zap.Int("face", res.Face),
	)
	return res, nil
}

// RecordRoll stores an externally chosen roll in the history.
func (s *Service) RecordRoll(ctx context.Context, categoryID, itemID string) (*HistoryEntry, error) {
	if categoryID == "" || itemID == "" {
		return nil, ErrRollRequired
	}
	return s.store.RecordRoll(ctx, categoryID, itemID)
}

// History returns the newest entries, optionally restricted to one category.
// A non-positive limit selects the configured default.
func (s *Service) History(ctx context.Context, categoryID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.store.History(ctx, categoryID, limit)
}

// ClearHistory deletes history entries, all of them when categoryID is empty.
func (s *Service) ClearHistory(ctx context.Context, categoryID string) (int64, error) {
	n, err := s.store.ClearHistory(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("randomizer history cleared", zap.String("category", categoryID), zap.Int64("deleted", n))
	return n, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
