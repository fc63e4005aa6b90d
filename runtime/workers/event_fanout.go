package workers

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"context"
	"log/slog"
	"time"
)

// EventFanout delivers participant changes to every registered sink.
//
// Delivery is best effort: a failing or slow sink is logged and skipped once its
// timeout elapses, it never blocks the registry that produced the change.
// Changes reach each sink in the order they were published.
type EventFanout struct {
	log         *slog.Logger
	changes     <-chan domain.Change
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, changes <-chan domain.Change,
	sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, changes: changes, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case change, ok := <-w.changes:
			if !ok {
				w.log.Debug("Change channel closed, stopping fanout")
				return nil
			}
			w.Fanout(ctx, change)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout hands the change to each sink under its own deadline.
func (w *EventFanout) Fanout(ctx context.Context, change domain.Change) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, change); err != nil {
			w.log.Warn("Sink failed to consume change",
				"room", change.Room, "participant", change.Participant.ID, "kind", change.Kind, "error", err)
		}
		cancel()
	}
}
