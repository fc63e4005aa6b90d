// Package realtime provides RealtimeChannel implementations: an in-process room
// and a websocket client for the relay.
package realtime

import (
	"collab-lab/contract"
	"collab-lab/domain/event"
	"collab-lab/errors"
	"collab-lab/observer"
	"maps"
	"sync"
	"time"
)

// MemoryRoom is an in-process presence provider shared by several MemoryChannels.
//
// A channel is subscribed as soon as it is opened but only becomes a member on its
// first SetParticipantData, which is announced as a join to every channel, itself included.
// Events are delivered synchronously on the caller's goroutine.
type MemoryRoom struct {
	mu       sync.Mutex
	channels []*MemoryChannel
	members  map[string]map[string]any
	props    map[string]any
}

func NewMemoryRoom() *MemoryRoom {
	return &MemoryRoom{
		members: make(map[string]map[string]any),
		props:   make(map[string]any),
	}
}

// Open returns a channel bound to clientID.
func (r *MemoryRoom) Open(clientID string) *MemoryChannel {
	c := &MemoryChannel{
		room:     r,
		clientID: clientID,
		joined:   observer.NewList[event.Presence](),
		left:     observer.NewList[event.Presence](),
		updated:  observer.NewList[event.Presence](),
		roomInfo: observer.NewList[event.RoomInfo](),
	}
	r.mu.Lock()
	r.channels = append(r.channels, c)
	r.mu.Unlock()
	return c
}

// Members returns a copy of the present members' data keyed by client id.
func (r *MemoryRoom) Members() map[string]map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[string]any, len(r.members))
	for id, data := range r.members {
		out[id] = maps.Clone(data)
	}
	return out
}

func (r *MemoryRoom) setData(clientID string, data map[string]any) {
	r.mu.Lock()
	current, present := r.members[clientID]
	if !present {
		current = make(map[string]any)
	}
	maps.Copy(current, data)
	r.members[clientID] = current
	recipients := append([]*MemoryChannel(nil), r.channels...)
	r.mu.Unlock()

	evt := event.Presence{ClientID: clientID, Timestamp: time.Now(), Data: maps.Clone(data)}
	for _, c := range recipients {
		if present {
			c.updated.Notify(evt)
		} else {
			c.joined.Notify(evt)
		}
	}
}

func (r *MemoryRoom) setProps(clientID string, props map[string]any) {
	r.mu.Lock()
	maps.Copy(r.props, props)
	recipients := append([]*MemoryChannel(nil), r.channels...)
	r.mu.Unlock()

	evt := event.RoomInfo{ClientID: clientID, Data: maps.Clone(props)}
	for _, c := range recipients {
		c.roomInfo.Notify(evt)
	}
}

func (r *MemoryRoom) leave(closing *MemoryChannel) {
	r.mu.Lock()
	data, present := r.members[closing.clientID]
	delete(r.members, closing.clientID)
	remaining := r.channels[:0]
	for _, c := range r.channels {
		if c != closing {
			remaining = append(remaining, c)
		}
	}
	r.channels = remaining
	recipients := append([]*MemoryChannel(nil), r.channels...)
	r.mu.Unlock()

	if !present {
		return
	}
	evt := event.Presence{ClientID: closing.clientID, Timestamp: time.Now(), Data: data}
	for _, c := range recipients {
		c.left.Notify(evt)
	}
}

func (r *MemoryRoom) snapshot() event.Snapshot {
	members := r.Members()
	return SnapshotMessage(members).Snapshot()
}

// MemoryChannel is one client's view of a MemoryRoom.
type MemoryChannel struct {
	room     *MemoryRoom
	clientID string
	mu       sync.Mutex
	closed   bool
	joined   *observer.List[event.Presence]
	left     *observer.List[event.Presence]
	updated  *observer.List[event.Presence]
	roomInfo *observer.List[event.RoomInfo]
}

func (c *MemoryChannel) ClientID() string { return c.clientID }

func (c *MemoryChannel) SubscribeToParticipantJoined(cb func(event.Presence)) contract.Unsubscribe {
	return c.joined.Add(cb)
}

func (c *MemoryChannel) SubscribeToParticipantLeft(cb func(event.Presence)) contract.Unsubscribe {
	return c.left.Add(cb)
}

func (c *MemoryChannel) SubscribeToParticipantUpdated(cb func(event.Presence)) contract.Unsubscribe {
	return c.updated.Add(cb)
}

func (c *MemoryChannel) SubscribeToRoomInfoUpdated(cb func(event.RoomInfo)) contract.Unsubscribe {
	return c.roomInfo.Add(cb)
}

// SetParticipantData enters the room on first call and updates the member afterwards.
func (c *MemoryChannel) SetParticipantData(data map[string]any) error {
	if c.isClosed() {
		return errors.ErrChannelClosed
	}
	c.room.setData(c.clientID, data)
	return nil
}

// SetRoomProperties merges props into the room properties and notifies everyone.
func (c *MemoryChannel) SetRoomProperties(props map[string]any) error {
	if c.isClosed() {
		return errors.ErrChannelClosed
	}
	c.room.setProps(c.clientID, props)
	return nil
}

// GetParticipants answers immediately with the present members.
func (c *MemoryChannel) GetParticipants(cb func(event.Snapshot)) {
	if c.isClosed() {
		return
	}
	cb(c.room.snapshot())
}

// Close leaves the room. Other channels receive a leave event if this one was a member.
func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.room.leave(c)
	c.joined.Clear()
	c.left.Clear()
	c.updated.Clear()
	c.roomInfo.Clear()
	return nil
}

func (c *MemoryChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
