package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/unsalatasoy/wordmatch/internal/models"
)

// DefaultRevertDelay is how long mismatched cards stay face up before they
// flip back down and the turn passes.
const DefaultRevertDelay = 3 * time.Second

const (
	sessionIDLength   = 6
	sessionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Manager is the session state machine. It owns the store exclusively and
// serializes all mutations per session through each session's mutex. The
// broadcast functions are injected by the transport layer (or by tests);
// either may be nil, in which case the corresponding delivery is skipped.
type Manager struct {
	store       *SessionStore
	log         *logrus.Logger
	revertDelay time.Duration

	// BroadcastToFn delivers an event to a single connection.
	BroadcastToFn func(id uuid.UUID, ev Event)

	// BroadcastAllFn delivers an event to every connection.
	BroadcastAllFn func(ev Event)
}

// NewManager builds a Manager with an empty store. A non-positive revert
// delay falls back to DefaultRevertDelay.
func NewManager(logger *logrus.Logger, revertDelay time.Duration) *Manager {
	if revertDelay <= 0 {
		revertDelay = DefaultRevertDelay
	}
	return &Manager{
		store:       NewSessionStore(),
		log:         logger,
		revertDelay: revertDelay,
	}
}

// newSessionID returns a short random token not currently in use.
func (m *Manager) newSessionID() string {
	for {
		b := make([]byte, sessionIDLength)
		for i := range b {
			b[i] = sessionIDAlphabet[rand.Intn(len(sessionIDAlphabet))]
		}
		id := string(b)
		if _, exists := m.store.Get(id); !exists {
			return id
		}
	}
}

// CreateSession builds a session with the participant as sole member and
// owner, generates its deck, and publishes it in the directory. The creator
// holds the first turn. Always succeeds.
func (m *Manager) CreateSession(relation models.Relation, p *models.Participant) *Session {
	s := &Session{
		ID:           m.newSessionID(),
		Relation:     relation,
		Participants: []*models.Participant{p},
		Deck:         GenerateDeck(relation),
		TurnHolder:   p.ID,
		Owner:        p,
	}
	m.store.Add(s)

	m.log.WithFields(logrus.Fields{
		"session":     s.ID,
		"participant": p.ID,
		"relation":    relation,
	}).Info("session created")

	m.sendTo(p.ID, Event{Type: EventSessionCreated, SessionID: s.ID})

	s.Mu.Lock()
	state := s.snapshotUnsafe()
	s.Mu.Unlock()
	m.broadcastState(state)
	m.RefreshDirectory()
	return s
}

// JoinSession seats the participant in an open session. The session starts
// on the second seat; the owner keeps the first move. A session that already
// started never reopens a seat, even after a departure.
func (m *Manager) JoinSession(sessionID string, p *models.Participant) error {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	s.Mu.Lock()
	if s.Started || s.Finished || len(s.Participants) >= maxParticipants {
		s.Mu.Unlock()
		return ErrSessionFull
	}
	s.Participants = append(s.Participants, p)
	s.Started = true
	s.rev++
	state := s.snapshotUnsafe()
	s.Mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"session":     sessionID,
		"participant": p.ID,
	}).Info("participant joined, session started")

	m.broadcastState(state)
	m.RefreshDirectory()
	return nil
}

// SubmitFlipPair resolves a flip attempt against two cards. A request for an
// unknown session is deliberately silent: it is a late or duplicate request
// from a client whose room already closed. All guards run before any
// mutation, so a rejected request leaves the session untouched.
func (m *Manager) SubmitFlipPair(sessionID string, requester uuid.UUID, idxA, idxB int) error {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil
	}

	s.Mu.Lock()

	player := s.participantUnsafe(requester)
	if player == nil || !s.Started || s.Finished || s.TurnHolder != requester {
		s.Mu.Unlock()
		return ErrNotYourTurn
	}
	if idxA == idxB || idxA < 0 || idxB < 0 || idxA >= len(s.Deck) || idxB >= len(s.Deck) {
		s.Mu.Unlock()
		return ErrCardIndex
	}
	cardA, cardB := s.Deck[idxA], s.Deck[idxB]
	if cardA.Matched || cardB.Matched {
		s.Mu.Unlock()
		return ErrCardMatched
	}

	cardA.FaceUp, cardB.FaceUp = true, true
	s.rev++

	if cardA.PairID == cardB.PairID {
		matchedBy := requester
		cardA.Matched, cardB.Matched = true, true
		cardA.MatchedBy, cardB.MatchedBy = &matchedBy, &matchedBy
		player.Score++
		// A correct match grants another turn to the same player.
		s.TurnHolder = requester

		var winner *models.Participant
		if lo.EveryBy(s.Deck, func(c *models.Card) bool { return c.Matched }) {
			s.Finished = true
			winner = s.winnerUnsafe()
		}
		state := s.snapshotUnsafe()
		s.Mu.Unlock()

		m.broadcastState(state)
		if winner != nil {
			over := Event{Type: EventGameOver, SessionID: state.ID, Winner: winner}
			for _, member := range state.Participants {
				m.sendTo(member.ID, over)
			}
			m.log.WithFields(logrus.Fields{
				"session": state.ID,
				"winner":  winner.ID,
				"score":   winner.Score,
			}).Info("game over")
		}
		return nil
	}

	// Mismatch: show both cards immediately, then revert after the delay
	// unless some other mutation lands on this session first.
	scheduledRev := s.rev
	state := s.snapshotUnsafe()
	s.revertTimer = time.AfterFunc(m.revertDelay, func() {
		m.revertFlip(sessionID, requester, idxA, idxB, scheduledRev)
	})
	s.Mu.Unlock()

	m.broadcastState(state)
	return nil
}

// revertFlip flips two mismatched cards back down and passes the turn to the
// other participant. It is a no-op when the session is gone or when any
// mutation committed after the mismatch, detected via the captured revision.
func (m *Manager) revertFlip(sessionID string, requester uuid.UUID, idxA, idxB int, scheduledRev uint64) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return
	}

	s.Mu.Lock()
	if s.rev != scheduledRev {
		s.Mu.Unlock()
		m.log.WithField("session", sessionID).Debug("discarding stale revert")
		return
	}
	if idxA >= len(s.Deck) || idxB >= len(s.Deck) {
		s.Mu.Unlock()
		return
	}
	s.Deck[idxA].FaceUp = false
	s.Deck[idxB].FaceUp = false
	// The turn passes on a miss.
	if other := s.otherParticipantUnsafe(requester); other != nil {
		s.TurnHolder = other.ID
	}
	s.rev++
	state := s.snapshotUnsafe()
	s.Mu.Unlock()

	m.broadcastState(state)
}

// LeaveSession removes the participant from every session holding it,
// destroying sessions that end up empty and re-broadcasting the rest. The
// gateway invokes this whenever a connection closes; disconnection is a
// normal lifecycle transition, not an error.
func (m *Manager) LeaveSession(participantID uuid.UUID) {
	changed := false
	for _, s := range m.store.List() {
		s.Mu.Lock()
		if !s.removeParticipantUnsafe(participantID) {
			s.Mu.Unlock()
			continue
		}
		changed = true
		s.rev++

		if len(s.Participants) == 0 {
			if s.revertTimer != nil {
				s.revertTimer.Stop()
			}
			s.Mu.Unlock()
			m.store.Delete(s.ID)
			m.log.WithFields(logrus.Fields{
				"session":     s.ID,
				"participant": participantID,
			}).Info("last participant left, session destroyed")
			continue
		}

		// Keep the turn holder pointing at a live participant.
		if s.TurnHolder == participantID {
			s.TurnHolder = s.Participants[0].ID
		}
		state := s.snapshotUnsafe()
		s.Mu.Unlock()

		m.log.WithFields(logrus.Fields{
			"session":     s.ID,
			"participant": participantID,
		}).Info("participant left")
		m.broadcastState(state)
	}
	if changed {
		m.RefreshDirectory()
	}
}

// RefreshDirectory republishes the open-session listing to every connection.
func (m *Manager) RefreshDirectory() {
	m.sendAll(Event{Type: EventOpenSessions, Sessions: m.OpenSessions()})
}

// broadcastState delivers a session-state event to every member captured in
// the snapshot. Runs outside any session lock.
func (m *Manager) broadcastState(state *SessionState) {
	ev := Event{Type: EventSessionState, SessionID: state.ID, State: state}
	for _, member := range state.Participants {
		m.sendTo(member.ID, ev)
	}
}

func (m *Manager) sendTo(id uuid.UUID, ev Event) {
	if m.BroadcastToFn != nil {
		m.BroadcastToFn(id, ev)
	}
}

func (m *Manager) sendAll(ev Event) {
	if m.BroadcastAllFn != nil {
		m.BroadcastAllFn(ev)
	}
}
