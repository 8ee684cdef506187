package game

import (
	"github.com/samber/lo"

	"github.com/unsalatasoy/wordmatch/internal/models"
)

// DirectoryEntry is the public projection of an open session: just enough
// for a second participant to pick a seat.
type DirectoryEntry struct {
	ID               string              `json:"id"`
	Owner            *models.Participant `json:"owner"`
	Relation         models.Relation     `json:"relation"`
	ParticipantCount int                 `json:"participantCount"`
}

// OpenSessions projects every joinable session (not started, not finished)
// in creation order. The listing is recomputed from the store on every call;
// nothing is cached that could drift.
func (m *Manager) OpenSessions() []DirectoryEntry {
	open := lo.Filter(m.store.List(), func(s *Session, _ int) bool {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		return !s.Started && !s.Finished
	})
	return lo.Map(open, func(s *Session, _ int) DirectoryEntry {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		owner := *s.Owner
		return DirectoryEntry{
			ID:               s.ID,
			Owner:            &owner,
			Relation:         s.Relation,
			ParticipantCount: len(s.Participants),
		}
	})
}
