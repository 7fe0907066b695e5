package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
	"github.com/cory-johannsen/campaign/internal/testutil"
)

func intPtr(v int) *int { return &v }

func makeTestCharacter(name string, category character.Category) *character.Character {
	return &character.Character{
		Name:     name,
		Category: category,
		Age:      intPtr(31),
		Attributes: &character.Attributes{
			Strength: 12, Intelligence: 9, Dexterity: 14,
			Perception: 11, Constitution: 10, WillPower: 8,
		},
		Status: &character.Status{Life: 42, Endurance: 30, Speed: 6, MaxLoad: 80},
		Skills: []character.Skill{{Name: "Stealth", Level: 3}, {Name: "Climb", Level: 1}},
		Traits: []character.Trait{{Name: "Keen Eye", Cost: 2}, {Name: "Lame", Cost: -1}},
	}
}

func TestCharacterRepository_CreateAndGet(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter("Aria", character.CategoryPlayer))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aria", got.Name)
	assert.Equal(t, character.CategoryPlayer, got.Category)
	require.NotNil(t, got.Age)
	assert.Equal(t, 31, *got.Age)
	assert.Nil(t, got.Weight)
	require.NotNil(t, got.Attributes)
	assert.Equal(t, 14, got.Attributes.Dexterity)
	assert.Equal(t, 42, got.Life())
	assert.Equal(t, []character.Skill{{Name: "Stealth", Level: 3}, {Name: "Climb", Level: 1}}, got.Skills)
	assert.Len(t, got.Drawbacks(), 1)
}

func TestCharacterRepository_CreateWithoutBlocks(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &character.Character{Name: "Shade", Category: character.CategoryZombie})
	require.NoError(t, err)
	assert.Nil(t, created.Attributes)
	assert.Nil(t, created.Status)
	assert.Equal(t, 0, created.Life())
	assert.Empty(t, created.Skills)
}

func TestCharacterRepository_GetNotFound(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, character.ErrNotFound)
	_, err = repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, character.ErrNotFound)
}

func TestCharacterRepository_ListFiltersByCategory(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, makeTestCharacter("Marcus", character.CategoryPlayer))
	require.NoError(t, err)
	_, err = repo.Create(ctx, makeTestCharacter("Goblin", character.CategoryMonster))
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, c := range all {
		assert.Len(t, c.Skills, 2, "lists are loaded for every character")
	}

	monsters, err := repo.List(ctx, character.CategoryMonster)
	require.NoError(t, err)
	require.Len(t, monsters, 1)
	assert.Equal(t, "Goblin", monsters[0].Name)
}

func TestCharacterRepository_Update(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter("Elena", character.CategoryNPC))
	require.NoError(t, err)

	name := "Elena Moonwhisper"
	patched, err := character.Patch{Name: &name, Status: &character.Status{Life: 10}}.Apply(created)
	require.NoError(t, err)
	patched.Skills = nil

	updated, err := repo.Update(ctx, patched)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 10, updated.Life())
	assert.Empty(t, updated.Skills)
	assert.Len(t, updated.Traits, 2)
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))

	patched.ID = "00000000-0000-0000-0000-000000000000"
	_, err = repo.Update(ctx, patched)
	assert.ErrorIs(t, err, character.ErrNotFound)
}

func TestCharacterRepository_Delete(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter("Viktor", character.CategoryAlly))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), character.ErrNotFound)
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, character.ErrNotFound)
}

func TestCharacterRepository_Property_LifeRoundTrips(t *testing.T) {
	repo := postgres.NewCharacterRepository(testutil.NewPool(t))
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		life := rapid.IntRange(0, 10000).Draw(rt, "life")
		cat := rapid.SampledFrom(character.Categories).Draw(rt, "category")
		c := &character.Character{Name: "prop", Category: cat, Status: &character.Status{Life: life}}
		created, err := repo.Create(ctx, c)
		if err != nil {
			rt.Fatal(err)
		}
		if created.Life() != life || created.Category != cat {
			rt.Fatalf("round trip mismatch: got life=%d cat=%s", created.Life(), created.Category)
		}
	})
}
