package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
)

func TestSeedArtworks_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	require.NoError(t, SeedArtworks(ctx, store))
	require.NoError(t, SeedArtworks(ctx, store))

	all, err := store.Artworks.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(Gallery))
	assert.Equal(t, "Heaven's Watchtower", all[0].Title)
	for _, a := range all {
		assert.NotEmpty(t, a.ID)
		assert.Positive(t, a.Price)
	}
}

func TestRunAll_ReportsProgress(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunAll(context.Background(), repositories.NewMemoryStore(), &out))
	assert.Contains(t, out.String(), "Running seeder: artworks")
	assert.Contains(t, out.String(), "done")
}
