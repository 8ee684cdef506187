package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unsalatasoy/wordmatch/internal/models"
)

// maxParticipants caps a session at two players.
const maxParticipants = 2

// Session holds the entire state of one game instance in memory. Every
// mutation happens under Mu; two operations on the same session id are never
// concurrent.
type Session struct {
	ID           string
	Relation     models.Relation
	Participants []*models.Participant
	Deck         []*models.Card
	TurnHolder   uuid.UUID
	Started      bool
	Finished     bool
	Owner        *models.Participant

	// rev increments on every committed mutation. A pending revert captures
	// it at scheduling time and fires as a no-op if it has moved since.
	rev uint64

	revertTimer *time.Timer

	Mu sync.Mutex
}

// SessionState is the read-only projection broadcast to session members.
type SessionState struct {
	ID           string               `json:"id"`
	Participants []models.Participant `json:"participants"`
	Deck         []models.Card        `json:"deck"`
	TurnHolder   string               `json:"turnHolder"`
	Started      bool                 `json:"started"`
	Finished     bool                 `json:"finished"`
	Relation     models.Relation      `json:"relation"`
	Owner        *models.Participant  `json:"owner,omitempty"`
}

// snapshotUnsafe copies the session into a broadcast-safe projection so the
// caller can release the lock before encoding. Assumes Mu is held.
func (s *Session) snapshotUnsafe() *SessionState {
	state := &SessionState{
		ID:           s.ID,
		Participants: make([]models.Participant, 0, len(s.Participants)),
		Deck:         make([]models.Card, 0, len(s.Deck)),
		Started:      s.Started,
		Finished:     s.Finished,
		Relation:     s.Relation,
	}
	for _, p := range s.Participants {
		state.Participants = append(state.Participants, *p)
	}
	for _, c := range s.Deck {
		state.Deck = append(state.Deck, *c)
	}
	if s.TurnHolder != uuid.Nil {
		state.TurnHolder = s.TurnHolder.String()
	}
	if s.Owner != nil {
		owner := *s.Owner
		state.Owner = &owner
	}
	return state
}

// participantUnsafe returns the participant with the given id, or nil.
// Assumes Mu is held.
func (s *Session) participantUnsafe(id uuid.UUID) *models.Participant {
	for _, p := range s.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// otherParticipantUnsafe returns the participant whose id differs from the
// given one, or nil for a solo session. Assumes Mu is held.
func (s *Session) otherParticipantUnsafe(id uuid.UUID) *models.Participant {
	for _, p := range s.Participants {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// removeParticipantUnsafe drops the participant and reports whether it was
// present. Assumes Mu is held.
func (s *Session) removeParticipantUnsafe(id uuid.UUID) bool {
	for i, p := range s.Participants {
		if p.ID == id {
			s.Participants = append(s.Participants[:i], s.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// winnerUnsafe returns a copy of the participant with the strictly highest
// score. Ties keep the earlier participant in join order. Assumes Mu is held.
func (s *Session) winnerUnsafe() *models.Participant {
	var best *models.Participant
	for _, p := range s.Participants {
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	winner := *best
	return &winner
}
