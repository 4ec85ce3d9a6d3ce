package port

import (
	"context"

	"github.com/huddlehq/huddle/internal/core/domain"
)

// IdentityStore is the external profile store, keyed by user id. The
// core only uses it to pick a default display name; absence or failure
// falls back to a generated guest name.
type IdentityStore interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, error)
	UpsertProfile(ctx context.Context, profile domain.Profile) error
}
