package randomizer_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/randomizer"
)

// memStore is an in-memory randomizer.Store.
type memStore struct {
	seq        int
	categories []*randomizer.Category
	history    []randomizer.HistoryEntry
	failCreate string
}

func (m *memStore) id() string {
	m.seq++
	return fmt.Sprintf("id-%d", m.seq)
}

func (m *memStore) find(id string) (*randomizer.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, randomizer.ErrCategoryNotFound
}

func (m *memStore) ListCategories(context.Context) ([]*randomizer.Category, error) {
	return m.categories, nil
}

func (m *memStore) GetCategory(_ context.Context, id string) (*randomizer.Category, error) {
	return m.find(id)
}

func (m *memStore) CategoryExists(_ context.Context, name string) (bool, error) {
	return slices.ContainsFunc(m.categories, func(c *randomizer.Category) bool { return c.Name == name }), nil
}

func (m *memStore) CreateCategory(ctx context.Context, name string, description *string) (*randomizer.Category, error) {
	if ok, _ := m.CategoryExists(ctx, name); ok {
		return nil, randomizer.ErrCategoryExists
	}
	c := &randomizer.Category{ID: m.id(), Name: name, Description: description, CreatedAt: time.Now()}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *memStore) CreateCategoryWithItems(ctx context.Context, name string, items []string) (*randomizer.Category, error) {
	if name == m.failCreate {
		return nil, errors.New("insert failed")
	}
	c, err := m.CreateCategory(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		c.Items = append(c.Items, randomizer.Item{ID: m.id(), CategoryID: c.ID, Name: it})
	}
	return c, nil
}

func (m *memStore) UpdateCategory(_ context.Context, id, name string, description *string) (*randomizer.Category, error) {
	c, err := m.find(id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Description = name, description
	return c, nil
}

func (m *memStore) DeleteCategory(_ context.Context, id string) error {
	n := len(m.categories)
	m.categories = slices.DeleteFunc(m.categories, func(c *randomizer.Category) bool { return c.ID == id })
	if len(m.categories) == n {
		return randomizer.ErrCategoryNotFound
	}
	return nil
}

func (m *memStore) ListItems(_ context.Context, categoryID string) ([]randomizer.Item, error) {
	c, err := m.find(categoryID)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (m *memStore) CreateItem(_ context.Context, item randomizer.Item) (*randomizer.Item, error) {
	c, err := m.find(item.CategoryID)
	if err != nil {
		return nil, err
	}
	item.ID = m.id()
	c.Items = append(c.Items, item)
	return &item, nil
}

func (m *memStore) DeleteItem(_ context.Context, id string) error {
	for _, c := range m.categories {
		if i := slices.IndexFunc(c.Items, func(it randomizer.Item) bool { return it.ID == id }); i >= 0 {
			c.Items = slices.Delete(c.Items, i, i+1)
			return nil
		}
	}
	return randomizer.ErrItemNotFound
}

func (m *memStore) RecordRoll(_ context.Context, categoryID, itemID string) (*randomizer.HistoryEntry, error) {
	c, err := m.find(categoryID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(c.Items, func(it randomizer.Item) bool { return it.ID == itemID })
	if i < 0 {
		return nil, randomizer.ErrItemNotFound
	}
	e := randomizer.HistoryEntry{ID: m.id(), CategoryID: c.ID, CategoryName: c.Name, Item: c.Items[i]}
	m.history = append([]randomizer.HistoryEntry{e}, m.history...)
	return &e, nil
}

func (m *memStore) History(_ context.Context, categoryID string, limit int) ([]randomizer.HistoryEntry, error) {
	var out []randomizer.HistoryEntry
	for _, e := range m.history {
		if categoryID == "" || e.CategoryID == categoryID {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) ClearHistory(_ context.Context, categoryID string) (int64, error) {
	n := len(m.history)
	m.history = slices.DeleteFunc(m.history, func(e randomizer.HistoryEntry) bool {
		return categoryID == "" || e.CategoryID == categoryID
	})
	return int64(n - len(m.history)), nil
}

func newService(t *testing.T, store randomizer.Store) *randomizer.Service {
	return randomizer.NewService(store, dice.NewSeededSource(7), zaptest.NewLogger(t), 3, 2)
}

func TestService_CreateCategory(t *testing.T) {
	svc := newService(t, &memStore{})
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "  ", nil)
	assert.ErrorIs(t, err, randomizer.ErrNameRequired)

	blank := " "
	c, err := svc.CreateCategory(ctx, " Loot ", &blank)
	require.NoError(t, err)
	assert.Equal(t, "Loot", c.Name)
	assert.Nil(t, c.Description)

	_, err = svc.CreateCategory(ctx, "Loot", nil)
	assert.ErrorIs(t, err, randomizer.ErrCategoryExists)
}

func TestService_AddItemRespectsCap(t *testing.T) {
	svc := newService(t, &memStore{})
	ctx := context.Background()
	c, err := svc.CreateCategory(ctx, "Loot", nil)
	require.NoError(t, err)

	for i := 0; i < svc.MaxItems(); i++ {
		_, err := svc.AddItem(ctx, randomizer.Item{CategoryID: c.ID, Name: fmt.Sprint("item", i)})
		require.NoError(t, err)
	}
	_, err = svc.AddItem(ctx, randomizer.Item{CategoryID: c.ID, Name: "one too many"})
	assert.ErrorIs(t, err, randomizer.ErrCategoryFull)

	_, err = svc.AddItem(ctx, randomizer.Item{CategoryID: c.ID, Name: ""})
	assert.ErrorIs(t, err, randomizer.ErrNameRequired)

	_, err = svc.AddItem(ctx, randomizer.Item{CategoryID: "missing", Name: "x"})
	assert.ErrorIs(t, err, randomizer.ErrCategoryNotFound)
}

func TestService_Import(t *testing.T) {
	store := &memStore{failCreate: "Broken"}
	svc := newService(t, store)
	ctx := context.Background()
	_, err := svc.CreateCategory(ctx, "Existing", nil)
	require.NoError(t, err)

	report, err := svc.Import(ctx, []randomizer.ImportCategory{
		{Name: "Weapons", Items: []string{"Sword", "Axe"}},
		{Name: "Existing", Items: []string{"x"}},
		{Name: "Huge", Items: []string{"1", "2", "3", "4"}},
		{Name: "Broken", Items: []string{"x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 3, report.Skipped)
	assert.Len(t, report.Errors, 3)
	assert.Contains(t, report.Message(), "1 category(ies) created, 3 skipped")

	ok, _ := store.CategoryExists(ctx, "Weapons")
	assert.True(t, ok)
}

func TestService_RollRecordsHistory(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()
	c, err := store.CreateCategoryWithItems(ctx, "Loot", []string{"Gold", "Gem"})
	require.NoError(t, err)

	res, err := svc.Roll(ctx, c.ID)
	require.NoError(t, err)
	assert.Contains(t, []string{"Gold", "Gem"}, res.Item.Name)
	assert.Equal(t, randomizer.Face(res.Item.ID), res.Face)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "Loot", res.Entry.CategoryName)

	hist, err := svc.History(ctx, c.ID, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestService_RollEmptyCategory(t *testing.T) {
	svc := newService(t, &memStore{})
	ctx := context.Background()
	c, err := svc.CreateCategory(ctx, "Empty", nil)
	require.NoError(t, err)

	_, err = svc.Roll(ctx, c.ID)
	assert.ErrorIs(t, err, randomizer.ErrEmptyCategory)
}

func TestService_HistoryDefaultLimitAndClear(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()
	a, _ := store.CreateCategoryWithItems(ctx, "A", []string{"x"})
	b, _ := store.CreateCategoryWithItems(ctx, "B", []string{"y"})
	for i := 0; i < 3; i++ {
		_, err := svc.Roll(ctx, a.ID)
		require.NoError(t, err)
	}
	_, err := svc.RecordRoll(ctx, b.ID, b.Items[0].ID)
	require.NoError(t, err)

	all, err := svc.History(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "default limit applies")

	n, err := svc.ClearHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	rest, err := svc.History(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, b.ID, rest[0].CategoryID)
}

func TestService_RecordRollRequiresIDs(t *testing.T) {
	svc := newService(t, &memStore{})
	_, err := svc.RecordRoll(context.Background(), "", "x")
	assert.ErrorIs(t, err, randomizer.ErrRollRequired)
}
