package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/domain/material"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	bundle := &ports.StateBundle{
		Materials: []material.Material{{
			ID:           "m1",
			Title:        "Biology",
			OriginalText: "Cells divide",
			Keywords:     []string{"Cells"},
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
		}},
		Settings: ports.Settings{Theme: "dark"},
	}

	require.NoError(t, store.Save(ctx, bundle))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Materials, 1)
	assert.Equal(t, "Biology", loaded.Materials[0].Title)
	assert.Equal(t, "dark", loaded.Settings.Theme)
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	bundle, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bundle.Materials)
	assert.Empty(t, bundle.Flashcards)
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	first := &ports.StateBundle{Settings: ports.Settings{Theme: "light"}}
	require.NoError(t, store.Save(ctx, first))

	second := &ports.StateBundle{Settings: ports.Settings{Theme: "dark"}}
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Settings.Theme)
}
