package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/huddlehq/huddle/internal/core/domain"
)

type profileRecord struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// IdentityStore keeps user profiles in Redis, one key per user id.
type IdentityStore struct {
	client *redis.Client
}

func NewIdentityStore(client *redis.Client) *IdentityStore {
	return &IdentityStore{client: client}
}

func (s *IdentityStore) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	raw, err := s.client.Get(ctx, profileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}

	var rec profileRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return domain.Profile{UserID: rec.UserID, DisplayName: rec.DisplayName}, nil
}

func (s *IdentityStore) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	data, err := json.Marshal(profileRecord{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.client.Set(ctx, profileKey(profile.UserID), data, 0).Err()
}

func profileKey(userID string) string {
	return "huddle:profile:" + userID
}
