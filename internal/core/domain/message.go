package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyContent = errors.New("message content cannot be empty")

// Message is a chat utterance accepted by the relay. It is immutable
// once constructed and belongs to exactly one room.
type Message struct {
	ID        string
	RoomID    string
	SenderID  string
	Author    string
	Content   string
	Timestamp time.Time
}

// NewMessage builds a message with a fresh identifier and the relay's
// clock. Content is trimmed; empty content is rejected.
func NewMessage(roomID, senderID, author, content string, at time.Time) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyContent
	}
	return Message{
		ID:        NewMessageID(),
		RoomID:    roomID,
		SenderID:  senderID,
		Author:    author,
		Content:   content,
		Timestamp: at,
	}, nil
}
