// internal/handlers/ws_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsalatasoy/wordmatch/internal/game"
)

func newTestServer(t *testing.T) (*Server, *logrus.Logger) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewServer(logger, 30*time.Millisecond), logger
}

// newTestConn registers a fake connection the way WSHandler would, minus the
// actual websocket.
func newTestConn(srv *Server) *connection {
	conn := &connection{
		id:     uuid.New(),
		out:    make(chan game.Event, 16),
		cancel: func() {},
	}
	srv.addConn(conn)
	return conn
}

// drain pulls every event currently buffered on the connection.
func drain(conn *connection) []game.Event {
	var events []game.Event
	for {
		select {
		case ev := <-conn.out:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func findEvent(events []game.Event, t game.EventType) *game.Event {
	for i := range events {
		if events[i].Type == t {
			return &events[i]
		}
	}
	return nil
}

func TestCreateAndJoinFlow(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)
	c2 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{
		Type:        "create-session",
		Relation:    "synonym",
		DisplayName: "Ece",
	}, logger)

	events := drain(c1)
	created := findEvent(events, game.EventSessionCreated)
	require.NotNil(t, created, "creator should receive session-created")
	require.Len(t, created.SessionID, 6)

	state := findEvent(events, game.EventSessionState)
	require.NotNil(t, state)
	assert.False(t, state.State.Started)

	// The directory refresh reaches every connection, including c2.
	dir := findEvent(drain(c2), game.EventOpenSessions)
	require.NotNil(t, dir)
	require.Len(t, dir.Sessions, 1)

	handleMessage(srv, c2, ClientMessage{
		Type:        "join-session",
		SessionID:   created.SessionID,
		DisplayName: "Deniz",
	}, logger)

	events = drain(c2)
	res := findEvent(events, game.EventJoinResult)
	require.NotNil(t, res)
	require.NotNil(t, res.Success)
	assert.True(t, *res.Success)
	assert.Equal(t, "joined session", res.Message)

	state = findEvent(events, game.EventSessionState)
	require.NotNil(t, state)
	assert.True(t, state.State.Started)
	assert.Len(t, state.State.Participants, 2)
	assert.Len(t, state.State.Deck, 16)

	dir = findEvent(events, game.EventOpenSessions)
	require.NotNil(t, dir, "starting the session clears it from the directory")
	assert.Empty(t, dir.Sessions)
}

func TestCreateSessionRejectsUnknownRelation(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{Type: "create-session", Relation: "rhyme"}, logger)

	events := drain(c1)
	errEv := findEvent(events, game.EventError)
	require.NotNil(t, errEv)
	assert.Contains(t, errEv.Message, "unknown relation")
	assert.Nil(t, findEvent(events, game.EventSessionCreated))
}

func TestJoinUnknownSession(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{Type: "join-session", SessionID: "zzzzzz"}, logger)

	res := findEvent(drain(c1), game.EventJoinResult)
	require.NotNil(t, res)
	require.NotNil(t, res.Success)
	assert.False(t, *res.Success)
	assert.Equal(t, game.ErrSessionNotFound.Error(), res.Message)
}

func TestFlipPairIndexCountValidation(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{
		Type:        "submit-flip-pair",
		SessionID:   "abc123",
		CardIndices: []int{0},
	}, logger)

	errEv := findEvent(drain(c1), game.EventError)
	require.NotNil(t, errEv)
	assert.Contains(t, errEv.Message, "exactly two")
}

func TestFlipPairErrorsReachOnlyRequester(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)
	c2 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{
		Type:        "create-session",
		Relation:    "antonym",
		DisplayName: "Ece",
	}, logger)
	created := findEvent(drain(c1), game.EventSessionCreated)
	require.NotNil(t, created)

	handleMessage(srv, c2, ClientMessage{
		Type:        "join-session",
		SessionID:   created.SessionID,
		DisplayName: "Deniz",
	}, logger)
	drain(c2)

	// c2 flips out of turn: only c2 hears about it.
	handleMessage(srv, c2, ClientMessage{
		Type:        "submit-flip-pair",
		SessionID:   created.SessionID,
		CardIndices: []int{0, 1},
	}, logger)

	errEv := findEvent(drain(c2), game.EventError)
	require.NotNil(t, errEv)
	assert.Equal(t, game.ErrNotYourTurn.Error(), errEv.Message)
	assert.Nil(t, findEvent(drain(c1), game.EventError))
}

func TestUnknownMessageType(t *testing.T) {
	srv, logger := newTestServer(t)
	c1 := newTestConn(srv)

	handleMessage(srv, c1, ClientMessage{Type: "dance"}, logger)

	errEv := findEvent(drain(c1), game.EventError)
	require.NotNil(t, errEv)
	assert.Contains(t, errEv.Message, "unknown message type")
}
