package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/resource"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
	"github.com/cory-johannsen/campaign/internal/testutil"
)

func TestResourceRepository_Skills(t *testing.T) {
	repo := postgres.NewResourceRepository(testutil.NewPool(t))
	ctx := context.Background()

	s, err := repo.CreateSkill(ctx, resource.Skill{Name: "Stealth", Type: resource.SkillSpecial, Page: intPtr(42)})
	require.NoError(t, err)
	assert.Equal(t, resource.SkillSpecial, s.Type)

	got, err := repo.GetSkill(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, *got.Page)

	got.Name = "Sneak"
	updated, err := repo.UpdateSkill(ctx, *got)
	require.NoError(t, err)
	assert.Equal(t, "Sneak", updated.Name)

	list, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteSkill(ctx, s.ID))
	_, err = repo.GetSkill(ctx, s.ID)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSkill(ctx, s.ID), resource.ErrNotFound)
}

func TestResourceRepository_QualitiesDrawbacks(t *testing.T) {
	repo := postgres.NewResourceRepository(testutil.NewPool(t))
	ctx := context.Background()

	q, err := repo.CreateQualityDrawback(ctx, resource.QualityDrawback{Name: "Lame", Cost: -2})
	require.NoError(t, err)
	assert.True(t, q.IsDrawback())

	q.Cost = 1
	updated, err := repo.UpdateQualityDrawback(ctx, *q)
	require.NoError(t, err)
	assert.False(t, updated.IsDrawback())

	_, err = repo.UpdateQualityDrawback(ctx, resource.QualityDrawback{ID: "bogus", Name: "x"})
	assert.ErrorIs(t, err, resource.ErrNotFound)

	require.NoError(t, repo.DeleteQualityDrawback(ctx, q.ID))
	list, err := repo.ListQualitiesDrawbacks(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResourceRepository_DeletedSkillKeepsCharacterCopy(t *testing.T) {
	pool := testutil.NewPool(t)
	resources := postgres.NewResourceRepository(pool)
	chars := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	s, err := resources.CreateSkill(ctx, resource.Skill{Name: "Climb", Type: resource.SkillRegular})
	require.NoError(t, err)
	c, err := chars.Create(ctx, &character.Character{
		Name: "Selena", Category: character.CategoryPlayer,
		Skills: []character.Skill{{SkillID: s.ID, Name: "Climb", Level: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, c.Skills[0].SkillID)

	require.NoError(t, resources.DeleteSkill(ctx, s.ID))
	got, err := chars.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Skills, 1)
	assert.Empty(t, got.Skills[0].SkillID)
	assert.Equal(t, "Climb", got.Skills[0].Name)
}
