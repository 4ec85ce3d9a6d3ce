package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/core/domain"
)

func TestPresence_JoinedNotifiesOthersOnly(t *testing.T) {
	registry := NewRegistry()
	presence := NewPresence(registry)

	a := &mockClient{id: "a"}
	b := &mockClient{id: "b"}
	registry.Register(a)
	registry.Register(b)
	registry.Join("a", "r1", "Alice")
	registry.Join("b", "r1", "Bob")

	presence.Joined("r1", "b", "Bob")

	require.Len(t, a.received(), 1)
	assert.Empty(t, b.received(), "presence is never echoed to the session that triggered it")

	ev := a.received()[0]
	assert.Equal(t, domain.EventUserJoined, ev.Name)
	payload := ev.Data.(domain.PresencePayload)
	assert.Equal(t, "b", payload.UserID)
	assert.Equal(t, "Bob", payload.DisplayName)
}

func TestPresence_LeftNotifiesRemainingMembers(t *testing.T) {
	registry := NewRegistry()
	presence := NewPresence(registry)

	a := &mockClient{id: "a"}
	registry.Register(a)
	registry.Join("a", "r1", "Alice")

	presence.Left("r1", "b", "Bob")

	require.Len(t, a.received(), 1)
	ev := a.received()[0]
	assert.Equal(t, domain.EventUserLeft, ev.Name)
	payload := ev.Data.(domain.PresencePayload)
	assert.Equal(t, "Bob", payload.DisplayName)
}

func TestPresence_EmptyRoomIsNoOp(t *testing.T) {
	registry := NewRegistry()
	presence := NewPresence(registry)

	assert.NotPanics(t, func() {
		presence.Left("empty-room", "a", "Alice")
		presence.Joined("missing-room", "a", "Alice")
	})
}
