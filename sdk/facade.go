// Package sdk is the entry point of a host application. Init validates the options,
// checks the API key, fetches the remote configuration and starts the room session;
// the returned Collaboration is the surface the host drives afterwards.
package sdk

import (
	"cmp"
	"collab-lab/auth"
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/runtime"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"
)

const configFetchTimeout = 5 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*auth.APIKeyClaims, error)
}

// KeyInspector checks the shape and expiration of a key without its secret.
type KeyInspector struct{}

func (KeyInspector) Authenticate(_ context.Context, apiKey string) (*auth.APIKeyClaims, error) {
	return auth.InspectToken(apiKey)
}

type Collaboration struct {
	log          *slog.Logger
	claims       *auth.APIKeyClaims
	orchestrator *runtime.Orchestrator
}

// Init returns a started Collaboration. Any failure before the session starts leaves
// nothing behind; a failure while waiting for readiness stops the session first.
// ctx bounds Init only: the session lasts until Destroy.
func Init(ctx context.Context, options Options, deps Dependencies) (*Collaboration, error) {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if deps.Channel == nil {
		return nil, fmt.Errorf("%w: a realtime channel is required", errors.ErrInvalidOptions)
	}

	authenticator := deps.Authenticator
	if authenticator == nil {
		authenticator = KeyInspector{}
	}
	claims, err := authenticator.Authenticate(ctx, options.APIKey)
	if err != nil {
		return nil, err
	}
	if !claims.Allows(options.Room) {
		return nil, fmt.Errorf("%w: key is scoped to %q", errors.ErrRoomMismatch, claims.Room)
	}

	fetcher := deps.ConfigFetcher
	if fetcher == nil && options.ConfigURL != "" {
		fetcher = NewHTTPConfigFetcher(options.ConfigURL, configFetchTimeout)
	}
	var remote RemoteConfig
	if fetcher != nil {
		if remote, err = fetcher.Fetch(ctx, options.APIKey); err != nil {
			return nil, err
		}
	}

	log = log.With("project", claims.Project)
	orchestrator := runtime.NewOrchestrator(log, deps.Channel, runtime.OrchestratorConfig{
		Room:             domain.RoomID(options.Room),
		Local:            options.Participant.participant(),
		Capabilities:     options.capabilities(remote),
		BufferSize:       cmp.Or(remote.BufferSize, options.BufferSize),
		TimelineCapacity: cmp.Or(remote.TimelineCapacity, options.TimelineCapacity),
	}, deps.Sinks...)

	if deps.Backend != nil {
		if err := orchestrator.Attach(ctx, deps.Backend); err != nil {
			return nil, err
		}
	}
	if err := orchestrator.Start(ctx); err != nil {
		orchestrator.Stop()
		return nil, err
	}

	if options.WaitReady {
		waitCtx, cancel := context.WithTimeout(ctx, options.readyTimeout())
		defer cancel()
		if err := orchestrator.WaitReady(waitCtx); err != nil {
			orchestrator.Stop()
			return nil, fmt.Errorf("waiting for participants snapshot: %w", err)
		}
	}

	log.Info("Collaboration initialized", "room", options.Room, "participant", options.Participant.ID)
	return &Collaboration{log: log, claims: claims, orchestrator: orchestrator}, nil
}

func (c *Collaboration) EnableAvatars()   { c.orchestrator.Adapter().EnableAvatars() }
func (c *Collaboration) DisableAvatars()  { c.orchestrator.Adapter().DisableAvatars() }
func (c *Collaboration) EnablePointers()  { c.orchestrator.Adapter().EnablePointers() }
func (c *Collaboration) DisablePointers() { c.orchestrator.Adapter().DisablePointers() }

// GetParticipantsOn3D returns the participants carrying an avatar config, sorted by id.
func (c *Collaboration) GetParticipantsOn3D() []domain.Participant {
	return lo.Filter(c.Participants(), func(p domain.Participant, _ int) bool {
		return p.AvatarConfig != nil
	})
}

// GetAvatars returns the avatar handles currently rendered, keyed by participant id.
func (c *Collaboration) GetAvatars() map[string]domain.RenderHandle {
	return c.orchestrator.Adapter().Avatars()
}

// Participants returns every known participant, sorted by id.
func (c *Collaboration) Participants() []domain.Participant {
	participants := slices.Collect(c.orchestrator.Registry().List())
	slices.SortFunc(participants, func(a, b domain.Participant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return participants
}

func (c *Collaboration) Local() (domain.Participant, bool) {
	id := c.orchestrator.Registry().LocalID()
	if id == "" {
		return domain.Participant{}, false
	}
	return c.orchestrator.Registry().Get(id)
}

// Observe registers fn for every registry change. fn runs synchronously on the
// goroutine that delivered the event and must not block.
// fn may call back into the Collaboration, UpdateLocal or Destroy included: the events
// it triggers are queued and handled once the current one is done.
func (c *Collaboration) Observe(fn func(domain.Change)) contract.Unsubscribe {
	return c.orchestrator.Registry().Observe(fn)
}

func (c *Collaboration) UpdateLocal(ctx context.Context, partial domain.Participant) error {
	return c.orchestrator.UpdateLocal(ctx, partial)
}

// ConnectPlugin attaches a rendering backend and spawns the participants already present.
func (c *Collaboration) ConnectPlugin(ctx context.Context, backend contract.RenderBackend) error {
	return c.orchestrator.Attach(ctx, backend)
}

func (c *Collaboration) DisconnectPlugin() {
	c.orchestrator.Detach()
}

func (c *Collaboration) Ready() <-chan struct{} {
	return c.orchestrator.Ready()
}

func (c *Collaboration) FollowedParticipant() string {
	return c.orchestrator.Adapter().FollowedParticipant()
}

// Timeline returns the recorded changes, oldest first.
func (c *Collaboration) Timeline() []domain.Change {
	return c.orchestrator.Timeline().Changes()
}

func (c *Collaboration) Project() string {
	return c.claims.Project
}

// Destroy ends the session. It is idempotent.
func (c *Collaboration) Destroy() {
	c.orchestrator.Stop()
	c.log.Info("Collaboration destroyed")
}
