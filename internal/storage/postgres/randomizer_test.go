package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/randomizer"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
	"github.com/cory-johannsen/campaign/internal/testutil"
)

func TestRandomizerRepository_CategoryLifecycle(t *testing.T) {
	repo := postgres.NewRandomizerRepository(testutil.NewPool(t))
	ctx := context.Background()

	c, err := repo.CreateCategoryWithItems(ctx, "Weapons", []string{"Sword", "Axe"})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)

	exists, err := repo.CategoryExists(ctx, "Weapons")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.CreateCategory(ctx, "Weapons", nil)
	assert.ErrorIs(t, err, randomizer.ErrCategoryExists)

	desc := "sharp things"
	renamed, err := repo.UpdateCategory(ctx, c.ID, "Blades", &desc)
	require.NoError(t, err)
	assert.Equal(t, "Blades", renamed.Name)
	assert.Len(t, renamed.Items, 2)

	list, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Sword", "Axe"}, []string{list[0].Items[0].Name, list[0].Items[1].Name})

	require.NoError(t, repo.DeleteCategory(ctx, c.ID))
	_, err = repo.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, randomizer.ErrCategoryNotFound)
}

func TestRandomizerRepository_CreateWithItemsIsAtomic(t *testing.T) {
	repo := postgres.NewRandomizerRepository(testutil.NewPool(t))
	ctx := context.Background()

	_, err := repo.CreateCategory(ctx, "Taken", nil)
	require.NoError(t, err)
	_, err = repo.CreateCategoryWithItems(ctx, "Taken", []string{"x"})
	assert.ErrorIs(t, err, randomizer.ErrCategoryExists)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	_, err = repo.CreateCategoryWithItems(ctx, "Partial", []string{"ok", string(long)})
	require.Error(t, err)
	exists, err := repo.CategoryExists(ctx, "Partial")
	require.NoError(t, err)
	assert.False(t, exists, "failed item insert rolls back the category")
}

func TestRandomizerRepository_ItemsAndHistory(t *testing.T) {
	repo := postgres.NewRandomizerRepository(testutil.NewPool(t))
	ctx := context.Background()

	a, err := repo.CreateCategory(ctx, "Loot", nil)
	require.NoError(t, err)
	b, err := repo.CreateCategoryWithItems(ctx, "Weather", []string{"Rain"})
	require.NoError(t, err)

	w := 2.5
	gold, err := repo.CreateItem(ctx, randomizer.Item{CategoryID: a.ID, Name: "Gold", Weight: &w})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, *gold.Weight, 0.0001)

	_, err = repo.CreateItem(ctx, randomizer.Item{CategoryID: "00000000-0000-0000-0000-000000000000", Name: "x"})
	assert.ErrorIs(t, err, randomizer.ErrCategoryNotFound)

	e, err := repo.RecordRoll(ctx, a.ID, gold.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loot", e.CategoryName)
	assert.Equal(t, "Gold", e.Item.Name)

	_, err = repo.RecordRoll(ctx, b.ID, gold.ID)
	assert.ErrorIs(t, err, randomizer.ErrItemNotFound, "item must belong to the category")

	_, err = repo.RecordRoll(ctx, b.ID, b.Items[0].ID)
	require.NoError(t, err)

	all, err := repo.History(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	onlyA, err := repo.History(ctx, a.ID, 50)
	require.NoError(t, err)
	assert.Len(t, onlyA, 1)

	n, err := repo.ClearHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.ClearHistory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteItem(ctx, gold.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, gold.ID), randomizer.ErrItemNotFound)
}

func TestRandomizerRepository_ServiceImportAndRoll(t *testing.T) {
	repo := postgres.NewRandomizerRepository(testutil.NewPool(t))
	svc := randomizer.NewService(repo, dice.NewSeededSource(1), zaptest.NewLogger(t), 20, 50)
	ctx := context.Background()

	items := make([]string, 21)
	for i := range items {
		items[i] = fmt.Sprintf("i%d", i)
	}
	report, err := svc.Import(ctx, []randomizer.ImportCategory{
		{Name: "Names", Items: []string{"Aria", "Marcus"}},
		{Name: "TooBig", Items: items},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	res, err := svc.Roll(ctx, cats[0].ID)
	require.NoError(t, err)
	assert.Contains(t, []string{"Aria", "Marcus"}, res.Item.Name)
	assert.GreaterOrEqual(t, res.Face, 1)
	assert.LessOrEqual(t, res.Face, 20)

	hist, err := svc.History(ctx, cats[0].ID, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
