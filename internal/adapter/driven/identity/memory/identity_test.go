package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/core/domain"
)

func TestIdentityStore_UpsertAndGet(t *testing.T) {
	store := NewIdentityStore()
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, store.UpsertProfile(ctx, domain.Profile{UserID: "u1", DisplayName: "Alice"}))

	got, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)

	require.NoError(t, store.UpsertProfile(ctx, domain.Profile{UserID: "u1", DisplayName: "Alicia"}))

	got, err = store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.DisplayName, "upsert replaces the stored profile")
}
