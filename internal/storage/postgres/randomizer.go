package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/campaign/internal/randomizer"
)

var _ randomizer.Store = (*RandomizerRepository)(nil)

// RandomizerRepository persists random table categories, items, and roll history.
// It satisfies randomizer.Store.
type RandomizerRepository struct {
	db *pgxpool.Pool
}

// NewRandomizerRepository creates a RandomizerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewRandomizerRepository(db *pgxpool.Pool) *RandomizerRepository {
	return &RandomizerRepository{db: db}
}

const (
	categoryColumns = `id, name, description, created_at, updated_at`
	itemColumns     = `id, category_id, name, description, weight, rarity, created_at`
)

func scanCategory(row pgx.Row) (*randomizer.Category, error) {
	var c randomizer.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, randomizer.ErrCategoryNotFound
		}
		return nil, err
	}
	c.Items = []randomizer.Item{}
	return &c, nil
}

func scanItem(row pgx.Row) (randomizer.Item, error) {
	var it randomizer.Item
	err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Weight, &it.Rarity, &it.CreatedAt)
	return it, err
}

// ListCategories returns every category with its items, newest first.
func (r *RandomizerRepository) ListCategories(ctx context.Context) ([]*randomizer.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM randomizer_categories ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	out := make([]*randomizer.Category, 0)
	byID := make(map[string]*randomizer.Category)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		out = append(out, c)
		byID[c.ID] = c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	items, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM randomizer_items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer items.Close()
	for items.Next() {
		it, err := scanItem(items)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		if c, ok := byID[it.CategoryID]; ok {
			c.Items = append(c.Items, it)
		}
	}
	return out, items.Err()
}

// GetCategory returns a category with its items or randomizer.ErrCategoryNotFound.
func (r *RandomizerRepository) GetCategory(ctx context.Context, id string) (*randomizer.Category, error) {
	if !validID(id) {
		return nil, randomizer.ErrCategoryNotFound
	}
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM randomizer_categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, randomizer.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("querying category: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

// CategoryExists reports whether a category named name exists.
func (r *RandomizerRepository) CategoryExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM randomizer_categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking category name: %w", err)
	}
	return exists, nil
}

// CreateCategory inserts an empty category.
//
// Postcondition: Returns randomizer.ErrCategoryExists when name is taken.
func (r *RandomizerRepository) CreateCategory(ctx context.Context, name string, description *string) (*randomizer.Category, error) {
	return insertCategory(ctx, r.db, name, description)
}

func insertCategory(ctx context.Context, q querier, name string, description *string) (*randomizer.Category, error) {
	c, err := scanCategory(q.QueryRow(ctx, `
		INSERT INTO randomizer_categories (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		uuid.NewString(), name, description,
	))
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("%q: %w", name, randomizer.ErrCategoryExists)
		}
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

// CreateCategoryWithItems inserts a category and its items atomically.
//
// Postcondition: Either the category and every item exist, or nothing was written.
func (r *RandomizerRepository) CreateCategoryWithItems(ctx context.Context, name string, items []string) (*randomizer.Category, error) {
	var out *randomizer.Category
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		c, err := insertCategory(ctx, tx, name, nil)
		if err != nil {
			return err
		}
		for _, itemName := range items {
			it, err := scanItem(tx.QueryRow(ctx, `
				INSERT INTO randomizer_items (id, category_id, name)
				VALUES ($1, $2, $3)
				RETURNING `+itemColumns,
				uuid.NewString(), c.ID, itemName,
			))
			if err != nil {
				return fmt.Errorf("inserting item %q: %w", itemName, err)
			}
			c.Items = append(c.Items, it)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCategory renames a category and replaces its description.
func (r *RandomizerRepository) UpdateCategory(ctx context.Context, id, name string, description *string) (*randomizer.Category, error) {
	if !validID(id) {
		return nil, randomizer.ErrCategoryNotFound
	}
	c, err := scanCategory(r.db.QueryRow(ctx, `
		UPDATE randomizer_categories SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, name, description,
	))
	if err != nil {
		switch {
		case errors.Is(err, randomizer.ErrCategoryNotFound):
			return nil, err
		case isDuplicateKeyError(err):
			return nil, fmt.Errorf("%q: %w", name, randomizer.ErrCategoryExists)
		}
		return nil, fmt.Errorf("updating category: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

// DeleteCategory removes a category; its items and history go with it.
func (r *RandomizerRepository) DeleteCategory(ctx context.Context, id string) error {
	if !validID(id) {
		return randomizer.ErrCategoryNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM randomizer_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return randomizer.ErrCategoryNotFound
	}
	return nil
}

// ListItems returns a category's items in insertion order.
//
// Postcondition: Returns randomizer.ErrCategoryNotFound for an unknown category.
func (r *RandomizerRepository) ListItems(ctx context.Context, categoryID string) ([]randomizer.Item, error) {
	if !validID(categoryID) {
		return nil, randomizer.ErrCategoryNotFound
	}
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM randomizer_categories WHERE id = $1)`, categoryID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}
	if !exists {
		return nil, randomizer.ErrCategoryNotFound
	}
	return r.listItems(ctx, categoryID)
}

func (r *RandomizerRepository) listItems(ctx context.Context, categoryID string) ([]randomizer.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM randomizer_items WHERE category_id = $1 ORDER BY seq`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()
	out := make([]randomizer.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// CreateItem inserts an item into its category.
func (r *RandomizerRepository) CreateItem(ctx context.Context, item randomizer.Item) (*randomizer.Item, error) {
	if !validID(item.CategoryID) {
		return nil, randomizer.ErrCategoryNotFound
	}
	it, err := scanItem(r.db.QueryRow(ctx, `
		INSERT INTO randomizer_items (id, category_id, name, description, weight, rarity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		uuid.NewString(), item.CategoryID, item.Name, item.Description, item.Weight, item.Rarity,
	))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, randomizer.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	return &it, nil
}

// DeleteItem removes an item.
func (r *RandomizerRepository) DeleteItem(ctx context.Context, id string) error {
	if !validID(id) {
		return randomizer.ErrItemNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM randomizer_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return randomizer.ErrItemNotFound
	}
	return nil
}

const historySelect = `
	SELECT h.id, h.category_id, c.name, h.created_at,
	       i.id, i.category_id, i.name, i.description, i.weight, i.rarity, i.created_at
	FROM randomizer_history h
	JOIN randomizer_categories c ON c.id = h.category_id
	JOIN randomizer_items i ON i.id = h.item_id`

func scanHistory(row pgx.Row) (randomizer.HistoryEntry, error) {
	var e randomizer.HistoryEntry
	err := row.Scan(&e.ID, &e.CategoryID, &e.CategoryName, &e.CreatedAt,
		&e.Item.ID, &e.Item.CategoryID, &e.Item.Name, &e.Item.Description,
		&e.Item.Weight, &e.Item.Rarity, &e.Item.CreatedAt,
	)
	return e, err
}

// RecordRoll appends a history entry.
//
// Postcondition: Returns randomizer.ErrItemNotFound unless itemID belongs to categoryID.
func (r *RandomizerRepository) RecordRoll(ctx context.Context, categoryID, itemID string) (*randomizer.HistoryEntry, error) {
	if !validID(categoryID) || !validID(itemID) {
		return nil, randomizer.ErrItemNotFound
	}
	id := uuid.NewString()
	tag, err := r.db.Exec(ctx, `
		INSERT INTO randomizer_history (id, category_id, item_id)
		SELECT $1, category_id, id FROM randomizer_items WHERE id = $2 AND category_id = $3`,
		id, itemID, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("recording roll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, randomizer.ErrItemNotFound
	}
	e, err := scanHistory(r.db.QueryRow(ctx, historySelect+` WHERE h.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("reading roll: %w", err)
	}
	return &e, nil
}

// History returns up to limit entries, newest first. An empty categoryID matches all.
func (r *RandomizerRepository) History(ctx context.Context, categoryID string, limit int) ([]randomizer.HistoryEntry, error) {
	if categoryID != "" && !validID(categoryID) {
		return []randomizer.HistoryEntry{}, nil
	}
	rows, err := r.db.Query(ctx,
		historySelect+` WHERE ($1 = '' OR h.category_id::text = $1) ORDER BY h.created_at DESC, h.id LIMIT $2`,
		categoryID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()
	out := make([]randomizer.HistoryEntry, 0)
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ClearHistory deletes history entries, all of them when categoryID is empty.
func (r *RandomizerRepository) ClearHistory(ctx context.Context, categoryID string) (int64, error) {
	if categoryID != "" && !validID(categoryID) {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx,
		`DELETE FROM randomizer_history WHERE ($1 = '' OR category_id::text = $1)`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return tag.RowsAffected(), nil
}
