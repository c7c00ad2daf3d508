package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog/log"
)

// graphql-transport-ws message types.
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

const (
	wsWriteWait      = 10 * time.Second
	wsConnectionInit = 15 * time.Second
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsSubscribePayload struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type wsHandler struct {
	schema   graphql.Schema
	upgrader websocket.Upgrader
}

func newWSHandler(schema graphql.Schema) *wsHandler {
	return &wsHandler{
		schema: schema,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{"graphql-transport-ws"},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// wsSession is one websocket connection carrying any number of concurrent
// subscription operations.
type wsSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	ops     map[string]context.CancelFunc
	baseCtx context.Context
}

func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("graphql ws: upgrade failed")
		return
	}
	sess := &wsSession{
		conn:    conn,
		ops:     make(map[string]context.CancelFunc),
		baseCtx: r.Context(),
	}
	defer sess.close()

	// The client must open with connection_init.
	conn.SetReadDeadline(time.Now().Add(wsConnectionInit))
	var init wsMessage
	if err := conn.ReadJSON(&init); err != nil || init.Type != msgConnectionInit {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(4408, "connection initialisation timeout"),
			time.Now().Add(wsWriteWait))
		return
	}
	conn.SetReadDeadline(time.Time{})
	if err := sess.send(wsMessage{Type: msgConnectionAck}); err != nil {
		return
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("graphql ws: read error")
			}
			return
		}
		switch msg.Type {
		case msgPing:
			sess.send(wsMessage{Type: msgPong})
		case msgSubscribe:
			h.startOperation(sess, msg)
		case msgComplete:
			sess.stopOperation(msg.ID)
		}
	}
}

func (h *wsHandler) startOperation(sess *wsSession, msg wsMessage) {
	var payload wsSubscribePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		sess.sendError(msg.ID, "invalid subscribe payload")
		return
	}

	ctx, cancel := context.WithCancel(sess.baseCtx)
	sess.mu.Lock()
	if _, exists := sess.ops[msg.ID]; exists {
		sess.mu.Unlock()
		cancel()
		sess.sendError(msg.ID, "subscriber already exists")
		return
	}
	sess.ops[msg.ID] = cancel
	sess.mu.Unlock()

	results := graphql.Subscribe(graphql.Params{
		Schema:         h.schema,
		RequestString:  payload.Query,
		OperationName:  payload.OperationName,
		VariableValues: payload.Variables,
		Context:        ctx,
	})

	go func() {
		defer sess.stopOperation(msg.ID)
		for {
			select {
			case <-ctx.Done():
				return
			case result, ok := <-results:
				if !ok {
					sess.send(wsMessage{ID: msg.ID, Type: msgComplete})
					return
				}
				data, err := json.Marshal(result)
				if err != nil {
					log.Error().Err(err).Msg("graphql ws: marshal result")
					continue
				}
				if err := sess.send(wsMessage{ID: msg.ID, Type: msgNext, Payload: data}); err != nil {
					return
				}
			}
		}
	}()
}

func (s *wsSession) stopOperation(id string) {
	s.mu.Lock()
	cancel, ok := s.ops[id]
	if ok {
		delete(s.ops, id)
	}
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

func (s *wsSession) send(msg wsMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteJSON(msg)
}

func (s *wsSession) sendError(id, message string) {
	payload, _ := json.Marshal([]map[string]string{{"message": message}})
	s.send(wsMessage{ID: id, Type: msgError, Payload: payload})
}

func (s *wsSession) close() {
	s.mu.Lock()
	for id, cancel := range s.ops {
		delete(s.ops, id)
		cancel()
	}
	s.mu.Unlock()
	s.conn.Close()
}
