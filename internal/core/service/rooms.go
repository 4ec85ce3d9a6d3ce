package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/domain"
	"github.com/huddlehq/huddle/internal/core/port"
)

const profileTimeout = 3 * time.Second

// Rooms orchestrates the session lifecycle: connect, join (with its
// implicit leave and presence announcements), and disconnect. All
// membership state lives in the registry.
type Rooms struct {
	registry *Registry
	presence *Presence
	identity port.IdentityStore
}

func NewRooms(registry *Registry, presence *Presence, identity port.IdentityStore) *Rooms {
	return &Rooms{
		registry: registry,
		presence: presence,
		identity: identity,
	}
}

// Connect records a newly established connection.
func (s *Rooms) Connect(client port.Client) {
	s.registry.Register(client)
}

// Join places the session in roomID under the given display name,
// falling back to the user's stored profile name, then to a generated
// guest name. Existing members are told about the newcomer; if the
// session came from another room, that room's remaining members are
// told it left.
func (s *Rooms) Join(ctx context.Context, sessionID, userID, roomID, displayName string) {
	name := s.resolveName(ctx, userID, displayName)

	dep, left := s.registry.Join(sessionID, roomID, name)
	if left {
		s.presence.Left(dep.RoomID, sessionID, dep.DisplayName)
	}
	s.presence.Joined(roomID, sessionID, name)
}

// Disconnect tears down the session. Safe to call for sessions that
// never joined a room, and safe to call more than once; the departure
// announcement fires at most once.
func (s *Rooms) Disconnect(sessionID string) {
	dep, left := s.registry.Unregister(sessionID)
	if left {
		s.presence.Left(dep.RoomID, sessionID, dep.DisplayName)
	}
}

func (s *Rooms) resolveName(ctx context.Context, userID, displayName string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if userID != "" {
		ctx, cancel := context.WithTimeout(ctx, profileTimeout)
		defer cancel()
		profile, err := s.identity.GetProfile(ctx, userID)
		if err == nil && strings.TrimSpace(profile.DisplayName) != "" {
			return profile.DisplayName
		}
		if err != nil {
			log.Debug().Err(err).Str("user_id", userID).Msg("profile lookup failed, using guest name")
		}
	}
	return domain.GuestName()
}
