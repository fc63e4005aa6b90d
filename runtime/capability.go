package runtime

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/observer"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

// CapabilityConfig holds the initial toggles of the adapter.
type CapabilityConfig struct {
	AvatarsEnabled    bool
	PointersEnabled   bool
	RenderLocalAvatar bool
}

// CapabilityAdapter gates avatar and pointer creation and delegates it to the attached backend.
//
// Toggles only affect future calls: flipping one never creates or destroys
// existing visual objects. Destroy calls always reach the backend so that objects
// created while a toggle was on are still cleaned up after it is turned off.
type CapabilityAdapter struct {
	mu              sync.Mutex
	log             *slog.Logger
	backend         contract.RenderBackend
	isLocal         func(id string) bool
	avatarsEnabled  bool
	pointersEnabled bool
	renderLocal     bool
	avatars         map[string]domain.RenderHandle
	pointers        map[string]domain.RenderHandle
	followID        string
	followers       *observer.List[string]
}

func NewCapabilityAdapter(log *slog.Logger, config CapabilityConfig, isLocal func(id string) bool) *CapabilityAdapter {
	if isLocal == nil {
		isLocal = func(string) bool { return false }
	}
	return &CapabilityAdapter{
		log:             log,
		isLocal:         isLocal,
		avatarsEnabled:  config.AvatarsEnabled,
		pointersEnabled: config.PointersEnabled,
		renderLocal:     config.RenderLocalAvatar,
		avatars:         make(map[string]domain.RenderHandle),
		pointers:        make(map[string]domain.RenderHandle),
		followers:       observer.NewList[string](),
	}
}

// Attach installs the rendering backend. Only one backend can be active at a time.
func (a *CapabilityAdapter) Attach(backend contract.RenderBackend) error {
	if backend == nil {
		return fmt.Errorf("%w: nil render backend", errors.ErrInvalidState)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.backend != nil {
		return fmt.Errorf("%w: a render backend is already attached", errors.ErrInvalidState)
	}
	a.backend = backend
	return nil
}

// Detach destroys every tracked object through the current backend and forgets it.
func (a *CapabilityAdapter) Detach() {
	a.mu.Lock()
	backend := a.backend
	avatars := a.avatars
	pointers := a.pointers
	a.backend = nil
	a.avatars = make(map[string]domain.RenderHandle)
	a.pointers = make(map[string]domain.RenderHandle)
	a.mu.Unlock()

	if backend == nil {
		return
	}
	for id := range pointers {
		backend.DestroyPointer(domain.Participant{ID: id})
	}
	for id := range avatars {
		backend.DestroyAvatar(domain.Participant{ID: id})
	}
}

func (a *CapabilityAdapter) Attached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backend != nil
}

// avatarAllowed applies the gating shared by avatars and pointers. Caller holds a.mu.
func (a *CapabilityAdapter) avatarAllowed(participant domain.Participant) bool {
	if a.backend == nil || participant.AvatarConfig == nil || !a.avatarsEnabled {
		return false
	}
	if a.isLocal(participant.ID) && !a.renderLocal {
		return false
	}
	return true
}

// CreateAvatar renders the participant's avatar when allowed, replacing any avatar
// already tracked for the same id. A backend failure is returned to the caller.
func (a *CapabilityAdapter) CreateAvatar(ctx context.Context, participant domain.Participant) error {
	a.mu.Lock()
	if !a.avatarAllowed(participant) {
		a.mu.Unlock()
		return nil
	}
	backend := a.backend
	_, exists := a.avatars[participant.ID]
	delete(a.avatars, participant.ID)
	a.mu.Unlock()

	if exists {
		backend.DestroyAvatar(participant)
	}

	handle, err := backend.CreateAvatar(ctx, participant)
	if err != nil {
		return fmt.Errorf("create avatar for %s: %w", participant.ID, err)
	}

	a.mu.Lock()
	a.avatars[participant.ID] = handle
	a.mu.Unlock()
	a.log.Debug("Avatar created", "participant", participant.ID, "handle", handle.ID)

	if labeler, ok := backend.(contract.NameLabeler); ok {
		if err := labeler.CreateName(participant, handle); err != nil {
			return fmt.Errorf("create name label for %s: %w", participant.ID, err)
		}
	}
	return nil
}

// CreatePointer follows the avatar gating and additionally requires pointers to be enabled.
func (a *CapabilityAdapter) CreatePointer(ctx context.Context, participant domain.Participant) error {
	a.mu.Lock()
	if !a.avatarAllowed(participant) || !a.pointersEnabled {
		a.mu.Unlock()
		return nil
	}
	backend := a.backend
	_, exists := a.pointers[participant.ID]
	delete(a.pointers, participant.ID)
	a.mu.Unlock()

	if exists {
		backend.DestroyPointer(participant)
	}

	handle, err := backend.CreatePointer(ctx, participant)
	if err != nil {
		return fmt.Errorf("create pointer for %s: %w", participant.ID, err)
	}

	a.mu.Lock()
	a.pointers[participant.ID] = handle
	a.mu.Unlock()
	a.log.Debug("Pointer created", "participant", participant.ID, "handle", handle.ID)
	return nil
}

// DestroyAvatar always delegates, whatever the current toggles.
func (a *CapabilityAdapter) DestroyAvatar(participant domain.Participant) {
	a.mu.Lock()
	backend := a.backend
	delete(a.avatars, participant.ID)
	a.mu.Unlock()

	if backend != nil {
		backend.DestroyAvatar(participant)
	}
}

// DestroyPointer always delegates, whatever the current toggles.
func (a *CapabilityAdapter) DestroyPointer(participant domain.Participant) {
	a.mu.Lock()
	backend := a.backend
	delete(a.pointers, participant.ID)
	a.mu.Unlock()

	if backend != nil {
		backend.DestroyPointer(participant)
	}
}

func (a *CapabilityAdapter) EnableAvatars()   { a.setAvatars(true) }
func (a *CapabilityAdapter) DisableAvatars()  { a.setAvatars(false) }
func (a *CapabilityAdapter) EnablePointers()  { a.setPointers(true) }
func (a *CapabilityAdapter) DisablePointers() { a.setPointers(false) }

func (a *CapabilityAdapter) setAvatars(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.avatarsEnabled = enabled
}

func (a *CapabilityAdapter) setPointers(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pointersEnabled = enabled
}

func (a *CapabilityAdapter) AvatarsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.avatarsEnabled
}

func (a *CapabilityAdapter) PointersEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pointersEnabled
}

// HasAvatar reports whether an avatar is currently rendered for id.
func (a *CapabilityAdapter) HasAvatar(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.avatars[id]
	return ok
}

// Avatars returns a copy of the rendered avatar handles keyed by participant id.
func (a *CapabilityAdapter) Avatars() map[string]domain.RenderHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.avatars)
}

// SetFollowParticipant records the participant everybody should follow. Empty means nobody.
func (a *CapabilityAdapter) SetFollowParticipant(id string) {
	a.mu.Lock()
	changed := a.followID != id
	a.followID = id
	a.mu.Unlock()

	if changed {
		a.log.Debug("Follow state changed", "participant", id)
		a.followers.Notify(id)
	}
}

func (a *CapabilityAdapter) FollowedParticipant() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.followID
}

// ObserveFollow registers fn for follow state changes.
func (a *CapabilityAdapter) ObserveFollow(fn func(id string)) contract.Unsubscribe {
	return a.followers.Add(fn)
}

// RendersLocalAvatar reports whether the local participant is rendered like the others.
func (a *CapabilityAdapter) RendersLocalAvatar() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderLocal
}
