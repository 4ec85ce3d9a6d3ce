package port

import "github.com/huddlehq/huddle/internal/core/domain"

// Client is the send path to one live connection. Deliver must not
// block; a failure affects only this client and is reported to the
// caller for logging, never propagated further.
type Client interface {
	ID() string
	Deliver(ev domain.Event) error
	Close() error
}
