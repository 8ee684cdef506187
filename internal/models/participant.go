package models

import "github.com/google/uuid"

// Participant is one side of a session, keyed by its live connection id.
// The id is unique per connection; a reconnect under a new connection is a
// new participant. Score starts at zero and only increases.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarRef   string    `json:"avatarRef"`
	Score       int       `json:"score"`
}
