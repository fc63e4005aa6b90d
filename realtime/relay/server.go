package relay

import (
	"collab-lab/auth"
	"collab-lab/domain"
	"collab-lab/domain/event"
	"collab-lab/realtime"
	"collab-lab/repositories"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	readLimit = 1 << 20
	writeWait = 5 * time.Second
)

type Server struct {
	log        *slog.Logger
	upgrader   websocket.Upgrader
	hub        *Hub
	secret     []byte
	repository repositories.IPresenceRepository
	pingEvery  time.Duration
}

func NewServer(log *slog.Logger, hub *Hub, secret []byte,
	repository repositories.IPresenceRepository, pingEvery time.Duration) *Server {
	return &Server{
		log:        log,
		hub:        hub,
		secret:     secret,
		repository: repository,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: pingEvery,
	}
}

// Routes mounts the room endpoints. Both require an API key granting the room.
//
//	GET /ws/rooms/{id}?access_token=...
//	GET /rooms/{id}/history?cursor=...
func (s *Server) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRoomKey(s.secret))
		r.Get("/ws/rooms/{id}", s.HandleWS)
		r.Get("/rooms/{id}/history", s.HandleHistory)
	})
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(chi.URLParam(r, "id"))
	if roomID == "" {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "room", roomID, "error", err)
		return
	}

	c := newWsConn(conn, roomID, uuid.NewString())
	s.hub.Add(c)
	s.log.Info("Client connected", "room", roomID, "client", c.clientID)

	ctx, cancel := context.WithCancel(r.Context())
	go s.writeLoop(ctx, c)
	s.readLoop(c)
	cancel()

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		s.log.Debug("ws close failed", "room", roomID, "client", c.clientID, "error", err)
	}
	s.log.Info("Client disconnected", "room", roomID, "client", c.clientID)
}

func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		var msg realtime.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("ws read failed", "client", c.clientID, "error", err)
			}
			return
		}
		switch msg.Type {
		case realtime.TypeSetData:
			s.hub.SetData(c, msg.Data)
		case realtime.TypeSetRoomProps:
			s.hub.SetRoomProps(c, msg.Data)
		case realtime.TypeGetParticipants:
			s.hub.SendSnapshot(c)
		default:
			s.log.Debug("Unknown message type ignored", "type", msg.Type)
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.log.Debug("ws ping failed", "client", c.clientID, "error", err)
			}
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type historyEntry struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Participant map[string]any `json:"participant"`
	At          time.Time      `json:"at"`
}

type historyResponse struct {
	Changes []historyEntry `json:"changes"`
	Cursor  *string        `json:"cursor,omitempty"`
}

// HandleHistory returns a page of the room's presence log, newest first.
func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.repository == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	roomID := domain.RoomID(chi.URLParam(r, "id"))
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	changes, next, err := s.repository.GetChanges(roomID, cursor)
	if err != nil {
		s.log.Error("History read failed", "room", roomID, "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	resp := historyResponse{Changes: make([]historyEntry, 0, len(changes))}
	for _, c := range changes {
		resp.Changes = append(resp.Changes, historyEntry{
			ID:          c.ID.String(),
			Kind:        string(c.Kind),
			Participant: event.ToData(c.Participant),
			At:          c.At,
		})
	}
	if len(changes) > 0 {
		resp.Cursor = next
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Debug("History encode failed", "error", err)
	}
}

type wsConn struct {
	conn     *websocket.Conn
	roomID   domain.RoomID
	clientID string
	sendMu   sync.Mutex
	closed   chan struct{}
	once     sync.Once
}

func newWsConn(c *websocket.Conn, roomID domain.RoomID, clientID string) *wsConn {
	return &wsConn{conn: c, roomID: roomID, clientID: clientID, closed: make(chan struct{})}
}

func (c *wsConn) Send(msg realtime.Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) ClientID() string      { return c.clientID }
func (c *wsConn) RoomID() domain.RoomID { return c.roomID }
