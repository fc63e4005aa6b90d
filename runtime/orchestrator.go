package runtime

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/domain/event"
	"collab-lab/errors"
	"collab-lab/projection"
	"collab-lab/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultBufferSize  = 256
	defaultSinkTimeout = 2 * time.Second
)

// OrchestratorConfig describes one room session.
type OrchestratorConfig struct {
	Room             domain.RoomID
	Local            domain.Participant
	Capabilities     CapabilityConfig
	BufferSize       int
	SinkTimeout      time.Duration
	TimelineCapacity int
}

// Orchestrator wires the registry, the presence engine and the capability adapter of
// one room, and forwards every registry change to the sinks through a supervised fan-out.
type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	config     OrchestratorConfig
	channel    contract.RealtimeChannel
	registry   *Registry
	adapter    *CapabilityAdapter
	engine     *PresenceEngine
	supervisor *workers.Supervisor
	timeline   *projection.Timeline
	sinks      []contract.EventSink
	changes    chan domain.Change
	unobserve  contract.Unsubscribe
	cancel     context.CancelFunc
	done       chan struct{}
	started    bool
	launched   bool
	stopped    bool
}

func NewOrchestrator(log *slog.Logger, channel contract.RealtimeChannel,
	config OrchestratorConfig, sinks ...contract.EventSink) *Orchestrator {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultBufferSize
	}
	if config.SinkTimeout <= 0 {
		config.SinkTimeout = defaultSinkTimeout
	}
	registry := NewRegistry(config.Room)
	adapter := NewCapabilityAdapter(log, config.Capabilities, registry.IsLocal)
	return &Orchestrator{
		log:        log.With("room", config.Room),
		config:     config,
		channel:    channel,
		registry:   registry,
		adapter:    adapter,
		engine:     NewPresenceEngine(log, channel, registry, adapter),
		supervisor: workers.NewSupervisor(log),
		timeline:   projection.NewTimeline(config.TimelineCapacity),
		sinks:      sinks,
		changes:    make(chan domain.Change, config.BufferSize),
		done:       make(chan struct{}),
	}
}

// Start installs the local participant, starts the fan-out and then the engine.
// It returns once the snapshot has been requested; use WaitReady to wait for it.
// ctx only carries values to the session: its cancellation does not end it, Stop does.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return fmt.Errorf("%w: orchestrator already started", errors.ErrInvalidState)
	}
	o.started = true
	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	o.cancel = cancel
	o.mu.Unlock()

	// Observing first so that the local participant reaches the sinks too.
	o.unobserve = o.registry.Observe(o.publish)
	if o.config.Local.ID != "" {
		if err := o.registry.SetLocal(o.config.Local); err != nil {
			return err
		}
	}

	sinks := append([]contract.EventSink{o.timeline}, o.sinks...)
	o.supervisor.Add(workers.NewEventFanout(o.log, o.changes, o.config.SinkTimeout, sinks...))
	o.mu.Lock()
	o.launched = true
	o.mu.Unlock()
	go func() {
		defer close(o.done)
		o.supervisor.Run(sessionCtx)
	}()

	if o.config.Local.ID != "" {
		if err := o.channel.SetParticipantData(event.ToData(o.config.Local)); err != nil {
			return fmt.Errorf("publish local participant: %w", err)
		}
	}

	o.log.Info("Starting presence engine", "local", o.config.Local.ID)
	return o.engine.Start(sessionCtx)
}

// publish never blocks the registry: a full buffer drops the change for the sinks only.
func (o *Orchestrator) publish(change domain.Change) {
	select {
	case o.changes <- change:
	default:
		o.log.Warn("Change buffer full, dropping change for sinks",
			"participant", change.Participant.ID, "kind", change.Kind)
	}
}

func (o *Orchestrator) WaitReady(ctx context.Context) error {
	return o.engine.WaitReady(ctx)
}

func (o *Orchestrator) Ready() <-chan struct{} {
	return o.engine.Ready()
}

// Attach connects a rendering backend and spawns the avatars of the participants
// already in the room, under the usual gating.
func (o *Orchestrator) Attach(ctx context.Context, backend contract.RenderBackend) error {
	if err := o.adapter.Attach(backend); err != nil {
		return err
	}
	var errs []error
	for participant := range o.registry.List() {
		if participant.Local {
			continue
		}
		if err := o.adapter.CreateAvatar(ctx, participant); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := o.adapter.CreatePointer(ctx, participant); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Detach removes every rendered object and forgets the backend.
func (o *Orchestrator) Detach() {
	o.adapter.Detach()
}

// UpdateLocal publishes the present fields of partial as the local participant's
// new state and merges them into the local record.
func (o *Orchestrator) UpdateLocal(ctx context.Context, partial domain.Participant) error {
	o.mu.Lock()
	running := o.started && !o.stopped
	o.mu.Unlock()
	if !running {
		return errors.ErrNotStarted
	}
	localID := o.registry.LocalID()
	if localID == "" {
		return fmt.Errorf("%w: no local participant", errors.ErrInvalidState)
	}
	partial.ID = localID

	if err := o.channel.SetParticipantData(event.ToData(partial)); err != nil {
		return fmt.Errorf("publish local participant: %w", err)
	}
	previous, _ := o.registry.Get(localID)
	record, _ := o.registry.Upsert(partial)

	if o.adapter.RendersLocalAvatar() && previous.StructurallyDiffers(record) {
		o.adapter.DestroyAvatar(record)
		o.adapter.DestroyPointer(record)
		if err := o.adapter.CreateAvatar(ctx, record); err != nil {
			return err
		}
		return o.adapter.CreatePointer(ctx, record)
	}
	return nil
}

// Stop tears the session down: engine, rendered objects, then the fan-out.
// It is idempotent.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.started || o.stopped {
		o.stopped = true
		o.mu.Unlock()
		return
	}
	o.stopped = true
	launched := o.launched
	cancel := o.cancel
	o.mu.Unlock()

	o.log.Info("Requesting orchestrator shutdown")
	o.engine.Stop()
	if o.unobserve != nil {
		o.unobserve()
	}
	o.adapter.Detach()
	if launched {
		o.supervisor.Stop()
		<-o.done
	}
	cancel()
	o.log.Debug("Orchestrator stopped")
}

func (o *Orchestrator) Room() domain.RoomID            { return o.config.Room }
func (o *Orchestrator) Registry() *Registry            { return o.registry }
func (o *Orchestrator) Adapter() *CapabilityAdapter    { return o.adapter }
func (o *Orchestrator) Engine() *PresenceEngine        { return o.engine }
func (o *Orchestrator) Timeline() *projection.Timeline { return o.timeline }
