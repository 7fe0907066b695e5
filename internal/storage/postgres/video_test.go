package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/media"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
	"github.com/cory-johannsen/campaign/internal/testutil"
)

func TestVideoRepository_CRUD(t *testing.T) {
	repo := postgres.NewVideoRepository(testutil.NewPool(t))
	ctx := context.Background()

	v, err := repo.Create(ctx, media.Video{Name: "Tavern", Category: "ambience", Link: "https://youtu.be/abc"})
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)

	v.Name = "Busy Tavern"
	updated, err := repo.Update(ctx, *v)
	require.NoError(t, err)
	assert.Equal(t, "Busy Tavern", updated.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, v.ID))
	_, err = repo.Get(ctx, v.ID)
	assert.ErrorIs(t, err, media.ErrVideoNotFound)
}
