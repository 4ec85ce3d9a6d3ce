package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/core/domain"
)

func TestMessageRepository_AppendAndQuery(t *testing.T) {
	repo := NewMessageRepository()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	msgs := []domain.Message{
		{ID: "m2", RoomID: "r1", Content: "second", Timestamp: base.Add(time.Second)},
		{ID: "m1", RoomID: "r1", Content: "first", Timestamp: base},
		{ID: "m3", RoomID: "r2", Content: "elsewhere", Timestamp: base},
	}
	for _, m := range msgs {
		require.NoError(t, repo.Append(ctx, m))
	}

	got, err := repo.ByRoom(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID, "history is ordered by timestamp")
	assert.Equal(t, "m2", got[1].ID)

	other, err := repo.ByRoom(ctx, "r2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "m3", other[0].ID)
}

func TestMessageRepository_EmptyRoom(t *testing.T) {
	repo := NewMessageRepository()

	got, err := repo.ByRoom(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, got)
}
