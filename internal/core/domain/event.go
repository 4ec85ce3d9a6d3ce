package domain

import (
	"encoding/json"
	"time"
)

// Event names on the wire. Inbound names are what clients send;
// outbound names are what the relay emits.
const (
	EventJoinRoom       = "join-room"
	EventSendMessage    = "send-message"
	EventPeerSignal     = "peer-signal"
	EventReceiveMessage = "receive-message"
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
)

// Event is one outbound frame: a named payload delivered to a client.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Envelope is the inbound framing: the event name plus its raw
// payload, decoded per event by the transport layer.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type MessagePayload struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SenderID  string    `json:"senderId"`
}

type PresencePayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func NewReceiveMessage(msg Message) Event {
	return Event{
		Name: EventReceiveMessage,
		Data: MessagePayload{
			ID:        msg.ID,
			Author:    msg.Author,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			SenderID:  msg.SenderID,
		},
	}
}

func NewUserJoined(sessionID, displayName string) Event {
	return Event{
		Name: EventUserJoined,
		Data: PresencePayload{UserID: sessionID, DisplayName: displayName},
	}
}

func NewUserLeft(sessionID, displayName string) Event {
	return Event{
		Name: EventUserLeft,
		Data: PresencePayload{UserID: sessionID, DisplayName: displayName},
	}
}

// NewPeerSignal tags an opaque signaling payload with the sender's
// session id so the recipient can attribute it. The payload contents
// are never interpreted.
func NewPeerSignal(senderID string, payload map[string]any) Event {
	tagged := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		tagged[k] = v
	}
	tagged["senderId"] = senderID
	return Event{Name: EventPeerSignal, Data: tagged}
}
