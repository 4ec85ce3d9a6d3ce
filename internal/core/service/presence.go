package service

import (
	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// Presence derives join/leave announcements from registry mutations
// and delivers them to the affected room. Events are never echoed back
// to the session that triggered them; an empty recipient set is not an
// error.
type Presence struct {
	registry *Registry
}

func NewPresence(registry *Registry) *Presence {
	return &Presence{registry: registry}
}

func (p *Presence) Joined(roomID, sessionID, displayName string) {
	p.announce(roomID, sessionID, domain.NewUserJoined(sessionID, displayName))
}

func (p *Presence) Left(roomID, sessionID, displayName string) {
	p.announce(roomID, sessionID, domain.NewUserLeft(sessionID, displayName))
}

func (p *Presence) announce(roomID, sessionID string, ev domain.Event) {
	for _, c := range p.registry.MembersOf(roomID) {
		if c.ID() == sessionID {
			continue
		}
		if err := c.Deliver(ev); err != nil {
			log.Warn().Err(err).Str("session_id", c.ID()).Str("room_id", roomID).
				Str("event", ev.Name).Msg("presence delivery failed")
		}
	}
}
