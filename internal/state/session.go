package state

import "github.com/google/uuid"

// NewSessionID identifies one run of the piece. It travels with story
// requests so proxy logs can tie them to a session.
func NewSessionID() string {
	return uuid.NewString()
}
