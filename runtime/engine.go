// Package runtime handles participant synchronization, capability gating and the wiring of a room.
// It owns the registry and reacts to realtime events without knowing the transport behind them.
package runtime

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/domain/event"
	"collab-lab/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// PresenceEngine bridges realtime participant events to the registry and runs the
// visual side effects through the capability adapter.
//
// Handlers are serialized: whatever goroutine the channel delivers on, they run one
// at a time, in delivery order. An event delivered while a handler is running, from a
// registry observer or a backend re-entering the engine for instance, is queued and
// handled right after the current one, so the engine behaves as a re-entrant event
// loop and never blocks on itself. Every handler is idempotent so duplicated
// deliveries are harmless. After Stop, late callbacks are no-ops.
type PresenceEngine struct {
	mu           sync.Mutex
	log          *slog.Logger
	channel      contract.RealtimeChannel
	registry     *Registry
	adapter      *CapabilityAdapter
	counter      *event.Counter
	ctx          context.Context
	unsubscribes []contract.Unsubscribe
	started      bool
	active       bool
	draining     bool
	queue        []job
	ready        chan struct{}
	readyOnce    sync.Once
}

// job is a handler waiting for the one running before it.
type job struct {
	kind     event.Type
	clientID string
	run      func() error
}

func NewPresenceEngine(log *slog.Logger, channel contract.RealtimeChannel,
	registry *Registry, adapter *CapabilityAdapter) *PresenceEngine {
	return &PresenceEngine{
		log:      log,
		channel:  channel,
		registry: registry,
		adapter:  adapter,
		counter:  event.NewCounter(),
		ctx:      context.Background(),
		ready:    make(chan struct{}),
	}
}

// Start subscribes to the four observers first and only then requests the initial
// snapshot, so that nothing delivered in between is lost.
// ctx is handed to the backend for every side effect until Stop; callers owning a
// shorter-lived context must detach it first.
// The engine becomes ready once a delivered snapshot has been handled.
func (e *PresenceEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return fmt.Errorf("%w: presence engine already started", errors.ErrInvalidState)
	}
	e.started = true
	e.active = true
	e.ctx = ctx
	e.mu.Unlock()

	unsubscribes := []contract.Unsubscribe{
		e.channel.SubscribeToParticipantJoined(e.deliver(event.ParticipantJoinedType, e.OnJoined)),
		e.channel.SubscribeToParticipantLeft(e.deliver(event.ParticipantLeftType, e.OnLeft)),
		e.channel.SubscribeToParticipantUpdated(e.deliver(event.ParticipantUpdatedType, e.OnUpdated)),
		e.channel.SubscribeToRoomInfoUpdated(func(evt event.RoomInfo) { e.OnRoomInfoUpdated(evt) }),
	}

	e.mu.Lock()
	e.unsubscribes = unsubscribes
	e.mu.Unlock()

	e.log.Debug("Presence engine subscribed, requesting snapshot")
	e.channel.GetParticipants(e.OnSnapshot)
	return nil
}

// deliver adapts a handler to a channel callback. A callback has nobody to return to,
// so adapter failures are logged here; the registry mutation is kept.
func (e *PresenceEngine) deliver(kind event.Type, handler func(context.Context, event.Presence) error) func(event.Presence) {
	return func(evt event.Presence) {
		e.mu.Lock()
		ctx := e.ctx
		e.mu.Unlock()
		if err := handler(ctx, evt); err != nil {
			e.logFailure(kind, evt.ClientID, err)
		}
	}
}

// serialize runs handle now when no other handler is running, then drains whatever
// was queued meanwhile. Otherwise it queues handle and returns nil: the failure,
// if any, is logged once the job runs.
func (e *PresenceEngine) serialize(kind event.Type, clientID string, handle func() error) error {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return nil
	}
	if e.draining {
		e.queue = append(e.queue, job{kind: kind, clientID: clientID, run: handle})
		e.mu.Unlock()
		e.log.Debug("Handler busy, event queued", "event", kind, "client", clientID)
		return nil
	}
	e.draining = true
	e.mu.Unlock()

	err := handle()
	e.drain()
	return err
}

func (e *PresenceEngine) drain() {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 || !e.active {
			e.queue = nil
			e.draining = false
			stopped := !e.active
			e.mu.Unlock()
			if stopped {
				// Stop happened while a handler was running and left the reset to us.
				e.registry.Reset()
			}
			return
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		if err := next.run(); err != nil {
			e.logFailure(next.kind, next.clientID, err)
		}
	}
}

func (e *PresenceEngine) logFailure(kind event.Type, clientID string, err error) {
	e.log.Error("Side effect failed", "event", kind, "client", clientID, "error", err)
}

// Ready is closed once the initial snapshot (or an explicit empty room) has been handled.
func (e *PresenceEngine) Ready() <-chan struct{} {
	return e.ready
}

// WaitReady blocks until the engine is ready or ctx is done.
func (e *PresenceEngine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop unsubscribes every observer and discards the registry.
// Stopping an engine that never started is a valid no-op. Stop never waits for a
// running handler, so it may be called from one.
func (e *PresenceEngine) Stop() {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	unsubscribes := e.unsubscribes
	e.unsubscribes = nil
	draining := e.draining
	e.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		if unsubscribe != nil {
			unsubscribe()
		}
	}
	if !draining {
		e.registry.Reset()
	}
	e.log.Debug("Presence engine stopped")
}

// Stats returns the number of handled events per type.
func (e *PresenceEngine) Stats() map[event.Type]int {
	return e.counter.Snapshot()
}

// OnSnapshot handles the answer to the participants request.
// An undelivered snapshot (empty and not flagged as an empty room) keeps the engine waiting.
// Entries for participants already known from an earlier event are merged like an
// update, including the structural check.
func (e *PresenceEngine) OnSnapshot(snapshot event.Snapshot) {
	_ = e.serialize(event.SnapshotType, "", func() error {
		e.onSnapshot(snapshot)
		return nil
	})
}

func (e *PresenceEngine) onSnapshot(snapshot event.Snapshot) {
	if !snapshot.Delivered() {
		e.log.Debug("Snapshot not delivered yet, still waiting")
		return
	}
	e.counter.Increment(event.SnapshotType)
	ctx := e.context()

	for _, presence := range snapshot.Participants {
		participant, err := event.ParseParticipant(event.SnapshotType, presence)
		if err != nil {
			e.drop(err)
			continue
		}
		previous, existed := e.registry.Get(participant.ID)
		record, kind := e.registry.Upsert(participant)
		if e.registry.IsLocal(record.ID) {
			continue
		}
		switch {
		case kind == domain.ChangeCreated:
			err = e.participantCreated(ctx, record)
		case existed:
			err = e.participantChanged(ctx, previous, record)
		}
		if err != nil {
			e.logFailure(event.SnapshotType, presence.ClientID, err)
		}
	}

	e.readyOnce.Do(func() {
		close(e.ready)
		e.log.Info("Presence engine ready", "participants", e.registry.Len())
	})
}

// OnJoined upserts the joining participant and runs creation side effects for a new,
// non-local record. A duplicate join degrades to the update path.
func (e *PresenceEngine) OnJoined(ctx context.Context, evt event.Presence) error {
	return e.serialize(event.ParticipantJoinedType, evt.ClientID, func() error {
		return e.onJoined(ctx, evt)
	})
}

func (e *PresenceEngine) onJoined(ctx context.Context, evt event.Presence) error {
	e.counter.Increment(event.ParticipantJoinedType)

	participant, err := event.ParseParticipant(event.ParticipantJoinedType, evt)
	if err != nil {
		e.drop(err)
		return nil
	}

	previous, existed := e.registry.Get(participant.ID)
	record, kind := e.registry.Upsert(participant)
	if e.registry.IsLocal(record.ID) {
		return nil
	}
	if kind == domain.ChangeCreated {
		return e.participantCreated(ctx, record)
	}
	if existed {
		return e.participantChanged(ctx, previous, record)
	}
	return nil
}

// OnLeft removes the participant behind the event's client id and always runs the
// destroy side effects, whether or not a record existed. A leave from a connection
// the participant has since replaced is stale and ignored.
func (e *PresenceEngine) OnLeft(ctx context.Context, evt event.Presence) error {
	return e.serialize(event.ParticipantLeftType, evt.ClientID, func() error {
		return e.onLeft(evt)
	})
}

func (e *PresenceEngine) onLeft(evt event.Presence) error {
	e.counter.Increment(event.ParticipantLeftType)

	id, ok := e.registry.ResolveClientID(evt.ClientID)
	if !ok {
		participant, err := event.ParseParticipant(event.ParticipantLeftType, evt)
		if err != nil {
			e.drop(err)
			return nil
		}
		id = participant.ID
		if current, known := e.registry.Get(id); known && evt.ClientID != "" &&
			current.ConnectionID != "" && current.ConnectionID != evt.ClientID {
			e.log.Debug("Ignoring stale leave from a replaced connection",
				"participant", id, "client", evt.ClientID, "connection", current.ConnectionID)
			return nil
		}
	}
	if e.registry.IsLocal(id) {
		e.log.Debug("Ignoring leave event for the local participant", "participant", id)
		return nil
	}

	target, existed := e.registry.Remove(id)
	if !existed {
		target = domain.Participant{ID: id, ConnectionID: evt.ClientID}
	}
	e.participantRemoved(target)
	return nil
}

// OnUpdated merges the update into the registry. Only a structural change (avatar
// model or avatar config) rebuilds the visual objects; anything else stays in memory.
func (e *PresenceEngine) OnUpdated(ctx context.Context, evt event.Presence) error {
	return e.serialize(event.ParticipantUpdatedType, evt.ClientID, func() error {
		return e.onUpdated(ctx, evt)
	})
}

func (e *PresenceEngine) onUpdated(ctx context.Context, evt event.Presence) error {
	e.counter.Increment(event.ParticipantUpdatedType)

	participant, err := event.ParseParticipant(event.ParticipantUpdatedType, evt)
	if err != nil {
		e.drop(err)
		return nil
	}

	previous, existed := e.registry.Get(participant.ID)
	record, kind := e.registry.Upsert(participant)
	local := e.registry.IsLocal(record.ID)
	if kind == domain.ChangeCreated {
		if local {
			return nil
		}
		return e.participantCreated(ctx, record)
	}
	if local && !e.adapter.RendersLocalAvatar() {
		return nil
	}
	if existed {
		return e.participantChanged(ctx, previous, record)
	}
	return nil
}

// OnRoomInfoUpdated forwards the follow state to the adapter. The registry is not touched.
func (e *PresenceEngine) OnRoomInfoUpdated(evt event.RoomInfo) {
	_ = e.serialize(event.RoomInfoUpdatedType, evt.ClientID, func() error {
		e.counter.Increment(event.RoomInfoUpdatedType)
		if _, ok := evt.Data[event.KeyFollowUserID]; !ok {
			return nil
		}
		props := event.ParseRoomProperties(evt)
		e.adapter.SetFollowParticipant(props.FollowUserID)
		return nil
	})
}

func (e *PresenceEngine) context() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

func (e *PresenceEngine) participantCreated(ctx context.Context, participant domain.Participant) error {
	if err := e.adapter.CreateAvatar(ctx, participant); err != nil {
		return err
	}
	return e.adapter.CreatePointer(ctx, participant)
}

func (e *PresenceEngine) participantChanged(ctx context.Context, previous, next domain.Participant) error {
	if !previous.StructurallyDiffers(next) {
		return nil
	}
	e.log.Debug("Structural change, rebuilding avatar", "participant", next.ID)
	e.participantRemoved(next)
	return e.participantCreated(ctx, next)
}

func (e *PresenceEngine) participantRemoved(participant domain.Participant) {
	e.adapter.DestroyAvatar(participant)
	e.adapter.DestroyPointer(participant)
}

func (e *PresenceEngine) drop(err error) {
	e.counter.Increment(event.DroppedType)
	e.log.Warn("Dropping malformed event", "error", err)
}
