package realtime

import (
	"collab-lab/contract"
	"collab-lab/domain/event"
	"collab-lab/errors"
	"collab-lab/observer"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// WSChannel is a RealtimeChannel talking to the relay over a websocket.
// Run must be running for events to be delivered; they are dispatched one at a
// time, in arrival order, on Run's goroutine.
type WSChannel struct {
	log      *slog.Logger
	conn     *websocket.Conn
	writeMu  sync.Mutex
	mu       sync.Mutex
	pending  []func(event.Snapshot)
	joined   *observer.List[event.Presence]
	left     *observer.List[event.Presence]
	updated  *observer.List[event.Presence]
	roomInfo *observer.List[event.RoomInfo]
	closed   chan struct{}
	once     sync.Once
}

// RoomURL builds the relay endpoint of a room, e.g. ws://host:port/ws/rooms/{room}?access_token=...
func RoomURL(relay, room, apiKey string) (string, error) {
	base, err := url.Parse(relay)
	if err != nil {
		return "", err
	}
	base = base.JoinPath("ws", "rooms", room)
	q := base.Query()
	q.Set("access_token", apiKey)
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// DialWSChannel connects to the relay room endpoint.
func DialWSChannel(ctx context.Context, log *slog.Logger, endpoint string) (*WSChannel, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial relay (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	return NewWSChannel(log, conn), nil
}

func NewWSChannel(log *slog.Logger, conn *websocket.Conn) *WSChannel {
	return &WSChannel{
		log:      log,
		conn:     conn,
		joined:   observer.NewList[event.Presence](),
		left:     observer.NewList[event.Presence](),
		updated:  observer.NewList[event.Presence](),
		roomInfo: observer.NewList[event.RoomInfo](),
		closed:   make(chan struct{}),
	}
}

func (c *WSChannel) SubscribeToParticipantJoined(cb func(event.Presence)) contract.Unsubscribe {
	return c.joined.Add(cb)
}

func (c *WSChannel) SubscribeToParticipantLeft(cb func(event.Presence)) contract.Unsubscribe {
	return c.left.Add(cb)
}

func (c *WSChannel) SubscribeToParticipantUpdated(cb func(event.Presence)) contract.Unsubscribe {
	return c.updated.Add(cb)
}

func (c *WSChannel) SubscribeToRoomInfoUpdated(cb func(event.RoomInfo)) contract.Unsubscribe {
	return c.roomInfo.Add(cb)
}

func (c *WSChannel) SetParticipantData(data map[string]any) error {
	return c.send(Message{Type: TypeSetData, Data: data})
}

func (c *WSChannel) SetRoomProperties(props map[string]any) error {
	return c.send(Message{Type: TypeSetRoomProps, Data: props})
}

// GetParticipants queues cb for the next snapshot answer. Answers are matched to
// requests in order.
func (c *WSChannel) GetParticipants(cb func(event.Snapshot)) {
	c.mu.Lock()
	c.pending = append(c.pending, cb)
	c.mu.Unlock()
	if err := c.send(Message{Type: TypeGetParticipants}); err != nil {
		c.log.Warn("Failed to request participants", "error", err)
	}
}

// Run reads frames until the connection or ctx ends.
// A connection lost while ctx is still alive is reported as ErrChannelClosed.
func (c *WSChannel) Run(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-c.closed:
		}
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || c.isClosed() {
				return nil
			}
			_ = c.Close()
			return fmt.Errorf("%w: %v", errors.ErrChannelClosed, err)
		}
		c.dispatch(msg)
	}
}

func (c *WSChannel) dispatch(msg Message) {
	switch msg.Type {
	case TypeParticipantJoined:
		c.joined.Notify(msg.Presence())
	case TypeParticipantLeft:
		c.left.Notify(msg.Presence())
	case TypeParticipantUpdated:
		c.updated.Notify(msg.Presence())
	case TypeRoomInfoUpdated:
		c.roomInfo.Notify(msg.RoomInfo())
	case TypeParticipants:
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.mu.Unlock()
			c.log.Debug("Unrequested participants answer ignored")
			return
		}
		cb := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		cb(msg.Snapshot())
	default:
		c.log.Debug("Unknown message type ignored", "type", msg.Type)
	}
}

func (c *WSChannel) send(msg Message) error {
	if c.isClosed() {
		return errors.ErrChannelClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Close sends a close frame and releases the connection. It is idempotent.
func (c *WSChannel) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *WSChannel) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
