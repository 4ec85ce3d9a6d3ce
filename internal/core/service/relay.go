package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/domain"
	"github.com/huddlehq/huddle/internal/core/port"
)

const appendTimeout = 5 * time.Second

// Relay accepts inbound chat and signaling events, resolves the
// sender's room, and fans them out to the room's members. It is the
// single source of live delivery; persistence is an asynchronous side
// effect that never blocks or fails a broadcast.
type Relay struct {
	registry *Registry
	repo     port.MessageRepository
	now      func() time.Time
}

func NewRelay(registry *Registry, repo port.MessageRepository) *Relay {
	return &Relay{
		registry: registry,
		repo:     repo,
		now:      time.Now,
	}
}

// HandleChat accepts a chat utterance from the session. Empty content
// and messages from sessions that are not in a room are dropped
// silently; the connection stays open. The message is delivered to
// every member of the sender's room, sender included, and clients
// deduplicate by message id.
func (r *Relay) HandleChat(sessionID, author, content string) {
	roomID, ok := r.registry.RoomOf(sessionID)
	if !ok {
		log.Debug().Str("session_id", sessionID).Msg("chat from session without a room, dropping")
		return
	}

	msg, err := domain.NewMessage(roomID, sessionID, author, content, r.now())
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyContent) {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("rejected chat message")
		}
		return
	}

	go r.persist(msg)

	ev := domain.NewReceiveMessage(msg)
	for _, c := range r.registry.MembersOf(roomID) {
		if err := c.Deliver(ev); err != nil {
			log.Warn().Err(err).Str("session_id", c.ID()).Str("room_id", roomID).
				Msg("chat delivery failed")
		}
	}
}

// HandleSignal forwards an opaque call-signaling payload to every
// other member of the sender's room, never back to the sender.
func (r *Relay) HandleSignal(sessionID string, payload map[string]any) {
	roomID, ok := r.registry.RoomOf(sessionID)
	if !ok {
		log.Debug().Str("session_id", sessionID).Msg("signal from session without a room, dropping")
		return
	}

	ev := domain.NewPeerSignal(sessionID, payload)
	for _, c := range r.registry.MembersOf(roomID) {
		if c.ID() == sessionID {
			continue
		}
		if err := c.Deliver(ev); err != nil {
			log.Warn().Err(err).Str("session_id", c.ID()).Str("room_id", roomID).
				Msg("signal delivery failed")
		}
	}
}

// persist appends the message to the history store. Live delivery has
// already happened; a failure here is logged and otherwise ignored.
func (r *Relay) persist(msg domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := r.repo.Append(ctx, msg); err != nil {
		log.Warn().Err(err).Str("room_id", msg.RoomID).Str("message_id", msg.ID).
			Msg("failed to persist chat message")
	}
}
