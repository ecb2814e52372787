package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nhle/workdesk/internal/state"
	"github.com/nhle/workdesk/internal/view"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 16 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamMessage is pushed to the client on connect, on every state change
// and whenever the client changes its view parameters.
type streamMessage struct {
	Type string       `json:"type"`
	View viewResponse `json:"view"`
}

type streamError struct {
	Type  string    `json:"type"`
	Error errorBody `json:"error"`
}

// StreamView upgrades to a websocket and pushes the recomputed view.
// Clients may send {"type":"query",...} messages to change parameters.
func (h *Handlers) StreamView(w http.ResponseWriter, r *http.Request) {
	params, err := viewParamsFromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	q, err := params.query(h.pageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.BusinessError("ws: upgrade failed", err)
		return
	}

	events, cancel := h.state.Subscribe()
	defer cancel()

	queries := make(chan viewParams, 1)
	done := make(chan struct{})
	go h.readPump(conn, queries, done)
	h.writePump(conn, q, events, queries, done)
}

// readPump forwards query messages until the connection fails.
func (h *Handlers) readPump(conn *websocket.Conn, queries chan viewParams, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.BusinessError("ws: read failed", err)
			}
			return
		}

		var params viewParams
		if err := json.Unmarshal(message, &params); err != nil || params.Type != "query" {
			continue
		}
		select {
		case <-queries:
		default:
		}
		queries <- params
	}
}

// writePump sends views and keepalive pings until the peer goes away.
func (h *Handlers) writePump(conn *websocket.Conn, q view.Query, events <-chan state.Event, queries <-chan viewParams, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	if err := h.sendView(conn, q); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case _, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := h.sendView(conn, q); err != nil {
				return
			}
		case params := <-queries:
			next, err := params.query(h.pageSize)
			if err != nil {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(streamError{
					Type:  "error",
					Error: errorBody{Code: "invalid_request", Message: err.Error()},
				}); err != nil {
					return
				}
				continue
			}
			q = next
			if err := h.sendView(conn, q); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handlers) sendView(conn *websocket.Conn, q view.Query) error {
	msg := streamMessage{
		Type: "view",
		View: h.computeView(q),
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
