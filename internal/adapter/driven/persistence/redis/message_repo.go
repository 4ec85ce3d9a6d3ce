package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// messageRecord is the stored shape of a chat message.
type messageRecord struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageRepository stores chat history in a Redis sorted set per
// room, scored by message timestamp so range reads come back in
// chronological order.
type MessageRepository struct {
	client *redis.Client
}

func NewMessageRepository(client *redis.Client) *MessageRepository {
	return &MessageRepository{client: client}
}

func (r *MessageRepository) Append(ctx context.Context, msg domain.Message) error {
	data, err := json.Marshal(messageRecord{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Author:    msg.Author,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return r.client.ZAdd(ctx, historyKey(msg.RoomID), redis.Z{
		Score:  float64(msg.Timestamp.UnixNano()),
		Member: data,
	}).Err()
}

func (r *MessageRepository) ByRoom(ctx context.Context, roomID string) ([]domain.Message, error) {
	raw, err := r.client.ZRange(ctx, historyKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query history for room %s: %w", roomID, err)
	}

	msgs := make([]domain.Message, 0, len(raw))
	for _, entry := range raw {
		var rec messageRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		msgs = append(msgs, domain.Message{
			ID:        rec.ID,
			RoomID:    rec.RoomID,
			SenderID:  rec.SenderID,
			Author:    rec.Author,
			Content:   rec.Content,
			Timestamp: rec.Timestamp,
		})
	}
	return msgs, nil
}

func historyKey(roomID string) string {
	return "huddle:room:" + roomID + ":messages"
}
