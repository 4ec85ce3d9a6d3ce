package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 256
)

var errSendBufferFull = errors.New("send buffer full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend host is pinned down
	CheckOrigin: func(r *http.Request) bool { return true },
}

// session is the server-side state for one live client connection. It
// implements port.Client; deliveries enqueue onto the buffered send
// channel and the write pump drains it in order.
type session struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan []byte
	log    zerolog.Logger
}

func (s *session) ID() string {
	return s.id
}

// Deliver queues one event for this client without blocking. A full
// buffer means the client is too slow or gone; the event is dropped
// and the error left to the caller to log.
func (s *session) Deliver(ev domain.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case s.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (s *session) Close() error {
	return s.conn.Close()
}

// ServeWS upgrades the connection and runs the session until the
// client goes away, for any reason.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	s := &session{
		id:     domain.NewSessionID(),
		userID: r.URL.Query().Get("user"),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
	s.log = log.With().Str("session_id", s.id).Logger()
	s.log.Info().Msg("client connected")

	h.Rooms.Connect(s)

	go s.writePump()
	s.readPump(h)
}

// readPump drives the session: it decodes inbound frames and hands
// them to the services. Its deferred teardown is the one place that
// unregisters the session, so ungraceful disconnects clean up
// membership exactly like explicit closes.
func (s *session) readPump(h *Handler) {
	defer func() {
		s.log.Info().Msg("client disconnected")
		h.Rooms.Disconnect(s.id)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.log.Error().Err(err).Msg("unexpected close")
			}
			return
		}
		h.dispatch(s, data)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type joinPayload struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type chatPayload struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// dispatch routes one inbound frame by event name. Malformed frames
// and unknown events are dropped; the connection stays open.
func (h *Handler) dispatch(s *session, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.log.Warn().Err(err).Msg("malformed frame, dropping")
		return
	}

	switch env.Event {
	case domain.EventJoinRoom:
		var req joinPayload
		if err := json.Unmarshal(env.Data, &req); err != nil {
			s.log.Warn().Err(err).Msg("malformed join payload, dropping")
			return
		}
		if req.RoomID == "" {
			s.log.Warn().Msg("join without room id, dropping")
			return
		}
		h.Rooms.Join(context.Background(), s.id, s.userID, req.RoomID, req.DisplayName)

	case domain.EventSendMessage:
		var req chatPayload
		if err := json.Unmarshal(env.Data, &req); err != nil {
			s.log.Warn().Err(err).Msg("malformed chat payload, dropping")
			return
		}
		h.Relay.HandleChat(s.id, req.Author, req.Content)

	case domain.EventPeerSignal:
		var payload map[string]any
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			s.log.Warn().Err(err).Msg("malformed signal payload, dropping")
			return
		}
		h.Relay.HandleSignal(s.id, payload)

	default:
		s.log.Warn().Str("event", env.Event).Msg("unknown event, dropping")
	}
}
