package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// MessageRepository keeps chat history in process memory, grouped by
// room. Used when no Redis address is configured, and in tests.
type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string][]domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		messages: make(map[string][]domain.Message),
	}
}

func (r *MessageRepository) Append(ctx context.Context, msg domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.RoomID] = append(r.messages[msg.RoomID], msg)
	return nil
}

func (r *MessageRepository) ByRoom(ctx context.Context, roomID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]domain.Message, len(r.messages[roomID]))
	copy(msgs, r.messages[roomID])
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}
