package service

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/port"
)

// Departure reports a vacated room so the caller can announce it to
// the remaining members.
type Departure struct {
	RoomID      string
	DisplayName string
}

type member struct {
	client port.Client
	name   string
}

// room guards its own member set so that fan-out reads and membership
// mutations on independent rooms do not contend.
type room struct {
	mu      sync.RWMutex
	members map[string]member
}

type sessionState struct {
	client port.Client
	roomID string // empty until a join is processed
	name   string
}

// Registry is the single source of truth for which sessions occupy
// which rooms. Rooms are created implicitly on first join and deleted
// the moment their last member leaves. The registry mutex guards the
// two maps; each room's mutex guards its member set.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*room
	sessions map[string]*sessionState
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]*room),
		sessions: make(map[string]*sessionState),
	}
}

// Register records a newly connected session. The session is not in
// any room until a join is processed.
func (r *Registry) Register(client port.Client) {
	r.mu.Lock()
	r.sessions[client.ID()] = &sessionState{client: client}
	count := len(r.sessions)
	r.mu.Unlock()

	log.Info().Str("session_id", client.ID()).Int("sessions", count).Msg("session registered")
}

// Join places the session in roomID, creating the room if needed. If
// the session already occupies a different room it is removed from it
// first, and that departure is returned so the caller can announce it.
// Joining the room the session is already in only refreshes the
// display name.
func (r *Registry) Join(sessionID, roomID, displayName string) (Departure, bool) {
	r.mu.Lock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return Departure{}, false
	}

	prevID, prevName := sess.roomID, sess.name
	sess.roomID = roomID
	sess.name = displayName

	target, exists := r.rooms[roomID]
	if !exists {
		target = &room{members: make(map[string]member)}
		r.rooms[roomID] = target
	}

	// Insert while still holding the registry lock so a racing
	// last-leave on the target room cannot delete it out from under
	// this join.
	target.mu.Lock()
	target.members[sessionID] = member{client: sess.client, name: displayName}
	target.mu.Unlock()

	var prev *room
	if prevID != "" && prevID != roomID {
		prev = r.rooms[prevID]
	}
	r.mu.Unlock()

	if prev != nil {
		prev.mu.Lock()
		delete(prev.members, sessionID)
		empty := len(prev.members) == 0
		prev.mu.Unlock()
		if empty {
			r.deleteIfEmpty(prevID, prev)
		}
	}

	log.Info().Str("session_id", sessionID).Str("room_id", roomID).
		Str("display_name", displayName).Msg("session joined room")

	if prev != nil {
		return Departure{RoomID: prevID, DisplayName: prevName}, true
	}
	return Departure{}, false
}

// Leave removes the session from whatever room it occupies. It is a
// safe no-op for sessions that never joined or already left; the
// second of two racing leaves observes no room and returns false.
func (r *Registry) Leave(sessionID string) (Departure, bool) {
	r.mu.Lock()
	sess, ok := r.sessions[sessionID]
	if !ok || sess.roomID == "" {
		r.mu.Unlock()
		return Departure{}, false
	}

	roomID, name := sess.roomID, sess.name
	sess.roomID = ""
	current := r.rooms[roomID]
	r.mu.Unlock()

	if current != nil {
		current.mu.Lock()
		delete(current.members, sessionID)
		empty := len(current.members) == 0
		current.mu.Unlock()
		if empty {
			r.deleteIfEmpty(roomID, current)
		}
	}

	log.Info().Str("session_id", sessionID).Str("room_id", roomID).Msg("session left room")
	return Departure{RoomID: roomID, DisplayName: name}, true
}

// Unregister tears down a session entirely, performing the leave on
// its behalf. Called exactly once per connection close, graceful or
// not; repeated calls are no-ops.
func (r *Registry) Unregister(sessionID string) (Departure, bool) {
	dep, left := r.Leave(sessionID)

	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	return dep, left
}

// MembersOf returns a snapshot of the room's current member clients,
// or nil if the room does not exist. The snapshot reflects every join
// and leave that completed before the call.
func (r *Registry) MembersOf(roomID string) []port.Client {
	r.mu.RLock()
	current := r.rooms[roomID]
	r.mu.RUnlock()

	if current == nil {
		return nil
	}

	current.mu.RLock()
	defer current.mu.RUnlock()
	clients := make([]port.Client, 0, len(current.members))
	for _, m := range current.members {
		clients = append(clients, m.client)
	}
	return clients
}

// RoomOf reports the room the session currently occupies.
func (r *Registry) RoomOf(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[sessionID]
	if !ok || sess.roomID == "" {
		return "", false
	}
	return sess.roomID, true
}

// Stats reports the current room and session counts.
func (r *Registry) Stats() (rooms, sessions int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms), len(r.sessions)
}

// Close disconnects every session and clears all state. Used on
// shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.rooms = make(map[string]*room)
	r.sessions = make(map[string]*sessionState)
	r.mu.Unlock()

	for id, sess := range sessions {
		if err := sess.client.Close(); err != nil {
			log.Warn().Err(err).Str("session_id", id).Msg("error closing session")
		}
	}
}

// deleteIfEmpty removes the room entry if it is still the registered
// room for this id and still empty. Rechecked under both locks because
// a join may have raced the final leave.
func (r *Registry) deleteIfEmpty(roomID string, candidate *room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rooms[roomID]
	if !ok || current != candidate {
		return
	}
	current.mu.RLock()
	empty := len(current.members) == 0
	current.mu.RUnlock()
	if empty {
		delete(r.rooms, roomID)
		log.Debug().Str("room_id", roomID).Msg("room removed")
	}
}
