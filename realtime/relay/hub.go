// Package relay is the websocket presence server rooms connect to.
package relay

import (
	"collab-lab/domain"
	"collab-lab/domain/event"
	"collab-lab/realtime"
	"collab-lab/runtime/workers"
	"log/slog"
	"maps"
	"sync"
	"time"
)

// Conn is one websocket client as seen by the hub.
type Conn interface {
	Send(msg realtime.Message) error
	ClientID() string
	RoomID() domain.RoomID
}

// NameCensor moderates display names before they are stored or broadcast.
type NameCensor interface {
	CensorName(name string) (string, bool)
}

type member struct {
	conn    Conn
	data    map[string]any
	present bool
}

type room struct {
	members map[string]*member
	props   map[string]any
}

// Hub keeps the members of every room and broadcasts their presence.
//
// A connection is subscribed when added and becomes a present member on its first
// data publication. Mutations, their recording and their broadcast happen under the
// same lock, so every client of a room observes events in the same order and a change
// is recorded before anybody hears about it.
type Hub struct {
	mu        sync.Mutex
	log       *slog.Logger
	rooms     map[domain.RoomID]*room
	moderator NameCensor
	record    func(domain.Change)
	now       func() time.Time
}

// NewHub builds a hub. moderator and record are optional.
func NewHub(log *slog.Logger, moderator NameCensor, record func(domain.Change)) *Hub {
	if record == nil {
		record = func(domain.Change) {}
	}
	return &Hub{
		log:       log,
		rooms:     make(map[domain.RoomID]*room),
		moderator: moderator,
		record:    record,
		now:       time.Now,
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[c.RoomID()]
	if !ok {
		r = &room{members: make(map[string]*member), props: make(map[string]any)}
		h.rooms[c.RoomID()] = r
	}
	r.members[c.ClientID()] = &member{conn: c, data: make(map[string]any)}
	h.log.Debug("Connection added", "room", c.RoomID(), "client", c.ClientID())
}

// Remove drops the connection and announces the leave if it was a present member.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[c.RoomID()]
	if !ok {
		return
	}
	m, ok := r.members[c.ClientID()]
	if !ok {
		return
	}
	delete(r.members, c.ClientID())
	if len(r.members) == 0 {
		delete(h.rooms, c.RoomID())
	}
	if !m.present {
		return
	}
	msg := realtime.Message{
		Type:      realtime.TypeParticipantLeft,
		ClientID:  c.ClientID(),
		Timestamp: h.now().UnixMilli(),
		Data:      maps.Clone(m.data),
	}
	h.recordLocked(c.RoomID(), domain.ChangeRemoved, msg)
	h.broadcastLocked(r, msg)
}

// SetData enters the member on first call, otherwise merges data and announces an update.
func (h *Hub) SetData(c Conn, data map[string]any) {
	data = h.moderate(data)

	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[c.RoomID()]
	if !ok {
		return
	}
	m, ok := r.members[c.ClientID()]
	if !ok {
		return
	}
	maps.Copy(m.data, data)

	kind, msgType := domain.ChangeUpdated, realtime.TypeParticipantUpdated
	if !m.present {
		m.present = true
		kind, msgType = domain.ChangeCreated, realtime.TypeParticipantJoined
	}
	msg := realtime.Message{
		Type:      msgType,
		ClientID:  c.ClientID(),
		Timestamp: h.now().UnixMilli(),
		Data:      data,
	}
	if kind == domain.ChangeCreated {
		msg.Data = maps.Clone(m.data)
	}
	full := msg
	full.Data = maps.Clone(m.data)
	h.recordLocked(c.RoomID(), kind, full)
	h.broadcastLocked(r, msg)
}

// SetRoomProps merges props into the room and announces them.
func (h *Hub) SetRoomProps(c Conn, props map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[c.RoomID()]
	if !ok {
		return
	}
	maps.Copy(r.props, props)
	h.broadcastLocked(r, realtime.Message{
		Type:     realtime.TypeRoomInfoUpdated,
		ClientID: c.ClientID(),
		Data:     props,
	})
}

// SendSnapshot answers a participants request with the present members of c's room.
func (h *Hub) SendSnapshot(c Conn) {
	h.mu.Lock()
	members := make(map[string]map[string]any)
	if r, ok := h.rooms[c.RoomID()]; ok {
		for id, m := range r.members {
			if m.present {
				members[id] = maps.Clone(m.data)
			}
		}
	}
	h.mu.Unlock()

	if err := c.Send(realtime.SnapshotMessage(members)); err != nil {
		h.log.Debug("Snapshot send failed", "room", c.RoomID(), "client", c.ClientID(), "error", err)
	}
}

// Stats counts the rooms and present members.
func (h *Hub) Stats() workers.RoomStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	stats := workers.RoomStats{Rooms: len(h.rooms)}
	for _, r := range h.rooms {
		for _, m := range r.members {
			if m.present {
				stats.Members++
			}
		}
	}
	return stats
}

func (h *Hub) moderate(data map[string]any) map[string]any {
	if h.moderator == nil {
		return data
	}
	name, ok := data[event.KeyName].(string)
	if !ok {
		return data
	}
	censored, changed := h.moderator.CensorName(name)
	if !changed {
		return data
	}
	out := maps.Clone(data)
	out[event.KeyName] = censored
	return out
}

// broadcastLocked is best effort: a client failing to receive is dropped by its own read loop.
func (h *Hub) broadcastLocked(r *room, msg realtime.Message) {
	for _, m := range r.members {
		if err := m.conn.Send(msg); err != nil {
			h.log.Debug("Broadcast failed", "client", m.conn.ClientID(), "type", msg.Type, "error", err)
		}
	}
}

func (h *Hub) recordLocked(roomID domain.RoomID, kind domain.ChangeKind, msg realtime.Message) {
	participant, err := event.ParseParticipant(event.Type(msg.Type), msg.Presence())
	if err != nil {
		h.log.Warn("Change not recorded", "room", roomID, "error", err)
		return
	}
	h.record(domain.Change{Room: roomID, Kind: kind, Participant: participant, At: h.now()})
}
