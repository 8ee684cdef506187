package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unsalatasoy/wordmatch/internal/game"
)

// connection is a single client's presence on the gateway.
type connection struct {
	id     uuid.UUID
	out    chan game.Event
	cancel func()
}

// write queues an event without blocking. Events to a closed or backed-up
// connection are dropped and logged; the client resyncs from the next full
// state broadcast.
func (c *connection) write(log *logrus.Logger, ev game.Event) {
	select {
	case c.out <- ev:
	default:
		log.WithFields(logrus.Fields{
			"conn":  c.id,
			"event": ev.Type,
		}).Warn("outbound channel full, dropping event")
	}
}

// Server ties the connection registry to the session manager and supplies
// the broadcast plumbing the manager needs. Connection identifiers double as
// participant identifiers inside sessions.
type Server struct {
	Manager *game.Manager

	log   *logrus.Logger
	mu    sync.Mutex
	conns map[uuid.UUID]*connection
}

// NewServer builds the gateway with a fresh session manager and wires the
// manager's broadcast functions onto the connection registry.
func NewServer(logger *logrus.Logger, revertDelay time.Duration) *Server {
	srv := &Server{
		log:   logger,
		conns: make(map[uuid.UUID]*connection),
	}
	srv.Manager = game.NewManager(logger, revertDelay)
	srv.Manager.BroadcastToFn = srv.sendTo
	srv.Manager.BroadcastAllFn = srv.broadcastAll
	return srv
}

func (s *Server) addConn(c *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c.id] = c
}

func (s *Server) removeConn(id uuid.UUID) {
	s.mu.Lock()
	c, ok := s.conns[id]
	delete(s.conns, id)
	s.mu.Unlock()
	if ok && c.cancel != nil {
		c.cancel()
	}
}

// sendTo delivers an event to one connection, if it is still registered.
func (s *Server) sendTo(id uuid.UUID, ev game.Event) {
	s.mu.Lock()
	c, ok := s.conns[id]
	s.mu.Unlock()
	if ok {
		c.write(s.log, ev)
	}
}

// broadcastAll delivers an event to every registered connection.
func (s *Server) broadcastAll(ev game.Event) {
	s.mu.Lock()
	conns := make([]*connection, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		c.write(s.log, ev)
	}
}
