package game

import "github.com/unsalatasoy/wordmatch/internal/models"

// EventType names an outbound message on the wire.
type EventType string

const (
	// EventOpenSessions carries the joinable-session directory to every connection.
	EventOpenSessions EventType = "open-sessions"
	// EventSessionCreated tells the creator the id of their new session.
	EventSessionCreated EventType = "session-created"
	// EventSessionState carries the full session projection to its members.
	EventSessionState EventType = "session-state"
	// EventGameOver names the winner once every card is matched.
	EventGameOver EventType = "game-over"
	// EventJoinResult acknowledges a join-session request.
	EventJoinResult EventType = "join-result"
	// EventError reports a request-scoped failure to a single connection.
	EventError EventType = "error"
)

// Event is the single outbound envelope. Fields irrelevant to a given type
// are omitted from the encoded payload.
type Event struct {
	Type      EventType           `json:"type"`
	SessionID string              `json:"sessionId,omitempty"`
	Sessions  []DirectoryEntry    `json:"sessions,omitempty"`
	State     *SessionState       `json:"state,omitempty"`
	Winner    *models.Participant `json:"winner,omitempty"`
	Success   *bool               `json:"success,omitempty"`
	Message   string              `json:"message,omitempty"`
}
