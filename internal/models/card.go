package models

import "github.com/google/uuid"

// Card is one face of a word pair inside a session deck. SequenceID is the
// stable display key assigned at generation time; the two cards of a pair
// carry the same PairID.
type Card struct {
	SequenceID int    `json:"id"`
	Word       string `json:"word"`
	FaceUp     bool   `json:"faceUp"`
	Matched    bool   `json:"matched"`
	PairID     int    `json:"pairId"`

	// MatchedBy identifies the participant who completed the pair.
	// Remains nil until the card is matched.
	MatchedBy *uuid.UUID `json:"matchedBy,omitempty"`
}
