// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unsalatasoy/wordmatch/internal/game"
	"github.com/unsalatasoy/wordmatch/internal/middleware"
	"github.com/unsalatasoy/wordmatch/internal/models"
)

// ClientMessage is the inbound envelope. Which fields matter depends on Type.
type ClientMessage struct {
	Type        string          `json:"type"`
	Relation    models.Relation `json:"relation,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
	AvatarRef   string          `json:"avatarRef,omitempty"`
	SessionID   string          `json:"sessionId,omitempty"`
	CardIndices []int           `json:"cardIndices,omitempty"`
}

// WSHandler upgrades the connection, registers it with the gateway, sends
// the current session directory, and runs the read loop until the client
// goes away. Every disconnect, clean or not, funnels through LeaveSession.
func WSHandler(logger *logrus.Logger, srv *Server, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"wordmatch"},
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "wordmatch" {
			c.Close(BadSubprotocolError, "client must speak the wordmatch subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := &connection{
			id:     uuid.New(),
			out:    make(chan game.Event, 16),
			cancel: cancel,
		}
		srv.addConn(conn)
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		// Fresh connections receive the directory before any request.
		conn.write(logger, game.Event{
			Type:     game.EventOpenSessions,
			Sessions: srv.Manager.OpenSessions(),
		})

		go writePump(ctx, c, conn, logger)

		readPump(ctx, c, srv, conn, logger)

		// readPump returned: the connection is gone.
		srv.removeConn(conn.id)
		srv.Manager.LeaveSession(conn.id)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
	}
}

// readPump handles incoming messages until the connection closes or errors.
func readPump(ctx context.Context, c *websocket.Conn, srv *Server, conn *connection, logger *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			switch {
			case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
				logger.Infof("websocket closed normally for %s", conn.id)
			case strings.Contains(err.Error(), "context canceled"):
				// Shutdown path, nothing to report.
			default:
				logger.Warnf("read error for %s: %v", conn.id, err)
			}
			return
		}
		if typ != websocket.MessageText {
			logger.Warnf("ignoring non-text message from %s", conn.id)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("invalid json from %s: %v", conn.id, err)
			conn.write(logger, game.Event{Type: game.EventError, Message: "invalid JSON payload"})
			continue
		}

		logger.Debugf("received %q from %s", msg.Type, conn.id)
		handleMessage(srv, conn, msg, logger)
	}
}

// handleMessage routes one inbound request to the session manager and
// reports request-scoped failures back to the requesting connection only.
func handleMessage(srv *Server, conn *connection, msg ClientMessage, logger *logrus.Logger) {
	switch msg.Type {
	case "create-session":
		if !msg.Relation.Valid() {
			conn.write(logger, game.Event{
				Type:    game.EventError,
				Message: "unknown relation: " + string(msg.Relation),
			})
			return
		}
		p := &models.Participant{ID: conn.id, DisplayName: msg.DisplayName, AvatarRef: msg.AvatarRef}
		srv.Manager.CreateSession(msg.Relation, p)

	case "join-session":
		p := &models.Participant{ID: conn.id, DisplayName: msg.DisplayName, AvatarRef: msg.AvatarRef}
		err := srv.Manager.JoinSession(msg.SessionID, p)
		ok := err == nil
		res := game.Event{Type: game.EventJoinResult, SessionID: msg.SessionID, Success: &ok}
		if err != nil {
			res.Message = err.Error()
		} else {
			res.Message = "joined session"
		}
		conn.write(logger, res)

	case "submit-flip-pair":
		if len(msg.CardIndices) != 2 {
			conn.write(logger, game.Event{
				Type:    game.EventError,
				Message: "cardIndices must hold exactly two entries",
			})
			return
		}
		err := srv.Manager.SubmitFlipPair(msg.SessionID, conn.id, msg.CardIndices[0], msg.CardIndices[1])
		if err != nil {
			conn.write(logger, game.Event{
				Type:      game.EventError,
				SessionID: msg.SessionID,
				Message:   err.Error(),
			})
		}

	default:
		logger.Warnf("unknown message type %q from %s", msg.Type, conn.id)
		conn.write(logger, game.Event{Type: game.EventError, Message: "unknown message type: " + msg.Type})
	}
}

// writePump drains the connection's outbound channel onto the websocket and
// keeps the peer alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *connection, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-conn.out:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal %s event for %s: %v", ev.Type, conn.id, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to %s: %v", conn.id, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping to %s failed, assuming disconnect: %v", conn.id, err)
				return
			}
		}
	}
}
