package memory

import (
	"context"
	"sync"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// IdentityStore keeps user profiles in process memory. Used when no
// Redis address is configured, and in tests.
type IdentityStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		profiles: make(map[string]domain.Profile),
	}
}

func (s *IdentityStore) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *IdentityStore) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}
