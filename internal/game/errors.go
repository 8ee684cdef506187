package game

import "errors"

// Request-scoped failures. These are reported to the offending connection
// only; none of them leaves partial state behind.
var (
	// ErrSessionNotFound means the session id is unknown or already destroyed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionFull means the session has no seat left for another participant.
	ErrSessionFull = errors.New("session is full")

	// ErrNotYourTurn means a flip came from someone other than the current
	// turn holder, or before the session was in a playable state.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrCardIndex means a card index is out of range or the two indices collide.
	ErrCardIndex = errors.New("card index out of range")

	// ErrCardMatched means a flip targeted a card that is already matched.
	ErrCardMatched = errors.New("card already matched")
)
