package domain

import (
	"github.com/google/uuid"
)

// NewSessionID returns a fresh identifier for a live connection.
func NewSessionID() string {
	return uuid.New().String()
}

// NewMessageID returns a fresh identifier for an accepted message.
func NewMessageID() string {
	return uuid.New().String()
}

// GuestName generates a fallback display name for clients that join
// without one and have no stored profile.
func GuestName() string {
	return "guest-" + uuid.New().String()[:8]
}
