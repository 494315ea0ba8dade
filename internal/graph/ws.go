package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/presence"
)

// graphql-ws (subscriptions-transport-ws) message types.
const (
	gqlConnectionInit      = "connection_init"
	gqlConnectionAck       = "connection_ack"
	gqlConnectionError     = "connection_error"
	gqlConnectionTerminate = "connection_terminate"
	gqlKeepAlive           = "ka"
	gqlStart               = "start"
	gqlStop                = "stop"
	gqlData                = "data"
	gqlError               = "error"
	gqlComplete            = "complete"
)

const keepAliveInterval = 20 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	Subprotocols:    []string{"graphql-ws"},
	CheckOrigin:     func(*http.Request) bool { return true },
}

type operationMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type connectionInitPayload struct {
	AuthToken string `json:"authToken"`
}

// wsSession is one WebSocket connection and the operations running on it.
type wsSession struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	ctx      context.Context
	schema   graphql.Schema
	log      *zap.Logger
	presence *presence.Tracker

	opsMu  sync.Mutex
	ops    map[string]context.CancelFunc
	userID string
}

// SubscriptionHandler serves GraphQL subscriptions over the graphql-ws
// protocol. The connection_init payload may carry an authToken; a valid
// token authenticates every operation on the connection and drives the
// user's presence.
func SubscriptionHandler(schema graphql.Schema, manager *auth.Manager, tracker *presence.Tracker, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		s := &wsSession{
			conn:     conn,
			ctx:      c.Request().Context(),
			schema:   schema,
			log:      log,
			presence: tracker,
			ops:      map[string]context.CancelFunc{},
		}
		s.serve(manager)
		return nil
	}
}

func (s *wsSession) serve(manager *auth.Manager) {
	defer s.close()

	for {
		var msg operationMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case gqlConnectionInit:
			s.handleInit(manager, msg.Payload)
		case gqlStart:
			s.handleStart(msg.ID, msg.Payload)
		case gqlStop:
			s.stopOperation(msg.ID)
			s.write(operationMessage{ID: msg.ID, Type: gqlComplete})
		case gqlConnectionTerminate:
			return
		}
	}
}

func (s *wsSession) handleInit(manager *auth.Manager, payload json.RawMessage) {
	if len(payload) > 0 {
		var init connectionInitPayload
		if err := json.Unmarshal(payload, &init); err == nil && init.AuthToken != "" {
			claims, err := manager.Parse(init.AuthToken)
			if err != nil {
				s.log.Debug("subscription auth rejected", zap.Error(err))
			} else {
				s.ctx = auth.NewContext(s.ctx, claims)
				s.userID = claims.UserID
				if err := s.presence.MarkOnline(s.ctx, s.userID); err != nil {
					s.log.Warn("failed to mark user online", zap.String("userId", s.userID), zap.Error(err))
				}
			}
		}
	}

	s.write(operationMessage{Type: gqlConnectionAck})
	s.write(operationMessage{Type: gqlKeepAlive})
	go s.keepAlive()
}

func (s *wsSession) handleStart(id string, payload json.RawMessage) {
	var op graphqlRequest
	if err := json.Unmarshal(payload, &op); err != nil {
		s.writeError(id, "invalid start payload")
		return
	}

	opCtx, cancel := context.WithCancel(s.ctx)
	s.opsMu.Lock()
	if prev, ok := s.ops[id]; ok {
		prev()
	}
	s.ops[id] = cancel
	s.opsMu.Unlock()

	go func() {
		defer s.stopOperation(id)

		results := graphql.Subscribe(graphql.Params{
			Schema:         s.schema,
			RequestString:  op.Query,
			OperationName:  op.OperationName,
			VariableValues: op.Variables,
			Context:        opCtx,
		})
		for result := range results {
			data, err := json.Marshal(result)
			if err != nil {
				s.log.Error("encode subscription result", zap.Error(err))
				continue
			}
			s.write(operationMessage{ID: id, Type: gqlData, Payload: data})
		}
		s.write(operationMessage{ID: id, Type: gqlComplete})
	}()
}

func (s *wsSession) stopOperation(id string) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if cancel, ok := s.ops[id]; ok {
		cancel()
		delete(s.ops, id)
	}
}

func (s *wsSession) keepAlive() {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.write(operationMessage{Type: gqlKeepAlive}); err != nil {
				return
			}
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *wsSession) write(msg operationMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *wsSession) writeError(id, message string) {
	payload, _ := json.Marshal(map[string]string{"message": message})
	s.write(operationMessage{ID: id, Type: gqlError, Payload: payload})
}

// close cancels every running operation, marks the user offline and shuts
// the socket.
func (s *wsSession) close() {
	s.opsMu.Lock()
	for id, cancel := range s.ops {
		cancel()
		delete(s.ops, id)
	}
	s.opsMu.Unlock()

	if s.userID != "" {
		// The request context may already be gone; presence cleanup gets
		// its own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.presence.MarkOffline(ctx, s.userID); err != nil {
			s.log.Warn("failed to mark user offline", zap.String("userId", s.userID), zap.Error(err))
		}
	}
	s.conn.Close()
}
