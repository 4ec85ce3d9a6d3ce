package port

import (
	"context"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// MessageRepository is the external chat-history store. The relay
// appends after accepting a message and never blocks live delivery on
// the result.
type MessageRepository interface {
	Append(ctx context.Context, msg domain.Message) error
	ByRoom(ctx context.Context, roomID string) ([]domain.Message, error)
}
