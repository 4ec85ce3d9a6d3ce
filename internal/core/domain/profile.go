package domain

import "errors"

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the display-name-bearing record kept by the external
// identity store, keyed by user id.
type Profile struct {
	UserID      string
	DisplayName string
}
