package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	msg, err := NewMessage("r1", "s1", "Alice", "  hello  ", at)
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "r1", msg.RoomID)
	assert.Equal(t, "s1", msg.SenderID)
	assert.Equal(t, "Alice", msg.Author)
	assert.Equal(t, "hello", msg.Content, "content is trimmed")
	assert.Equal(t, at, msg.Timestamp)
}

func TestNewMessage_RejectsEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := NewMessage("r1", "s1", "Alice", content, time.Now())
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	at := time.Now()
	a, err := NewMessage("r1", "s1", "Alice", "same", at)
	require.NoError(t, err)
	b, err := NewMessage("r1", "s1", "Alice", "same", at)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "identical repeats must stay distinguishable")
}
