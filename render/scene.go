// Package render provides rendering backends that keep a headless scene of the
// room: one avatar per participant, an optional pointer and a name label.
package render

import (
	"collab-lab/domain"
	"collab-lab/errors"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const DefaultModel = "default-avatar.glb"

// Object is one visual object of the scene.
type Object struct {
	Handle   domain.RenderHandle
	Model    string
	Label    string
	Color    string
	Config   domain.AvatarConfig
	Position domain.Vector3
}

// Scene is a RenderBackend and a NameLabeler. Objects are keyed by participant
// id and kind, so a participant has at most one object of each kind.
type Scene struct {
	mu      sync.RWMutex
	log     *slog.Logger
	objects map[string]map[string]Object
	limit   int
}

// NewScene builds a scene holding at most limit avatars (0 means unlimited).
func NewScene(log *slog.Logger, limit int) *Scene {
	return &Scene{log: log, objects: make(map[string]map[string]Object), limit: limit}
}

func (s *Scene) CreateAvatar(ctx context.Context, participant domain.Participant) (domain.RenderHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.RenderHandle{}, err
	}
	model := participant.AvatarModel()
	if model == "" {
		model = DefaultModel
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && s.countLocked(domain.HandleAvatar) >= s.limit {
		if _, ok := s.objects[participant.ID][domain.HandleAvatar]; !ok {
			return domain.RenderHandle{}, errors.ErrSceneFull
		}
	}
	object := Object{
		Handle: s.handle(participant.ID, domain.HandleAvatar),
		Model:  model,
		Color:  participant.Color,
		Config: lo.FromPtr(participant.AvatarConfig),
	}
	if participant.Position != nil {
		object.Position = *participant.Position
	}
	s.putLocked(participant.ID, object)
	s.log.Debug("Avatar placed", "participant", participant.ID, "model", model)
	return object.Handle, nil
}

func (s *Scene) DestroyAvatar(participant domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The label belongs to the avatar.
	s.deleteLocked(participant.ID, domain.HandleAvatar)
	s.deleteLocked(participant.ID, domain.HandleName)
}

func (s *Scene) CreatePointer(ctx context.Context, participant domain.Participant) (domain.RenderHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.RenderHandle{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	object := Object{Handle: s.handle(participant.ID, domain.HandlePointer), Color: participant.Color}
	s.putLocked(participant.ID, object)
	return object.Handle, nil
}

func (s *Scene) DestroyPointer(participant domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(participant.ID, domain.HandlePointer)
}

// CreateName attaches a label to an existing avatar.
func (s *Scene) CreateName(participant domain.Participant, avatar domain.RenderHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.objects[participant.ID][domain.HandleAvatar]
	if !ok || current.Handle.ID != avatar.ID {
		return errors.ErrUnknownAvatar
	}
	label := participant.Name
	if label == "" {
		label = participant.ID
	}
	s.putLocked(participant.ID, Object{Handle: s.handle(participant.ID, domain.HandleName), Label: label})
	return nil
}

// Object returns the participant's object of the given kind.
func (s *Scene) Object(participantID, kind string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[participantID][kind]
	return object, ok
}

// Objects lists every object, ordered by participant then kind.
func (s *Scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Object
	for _, id := range slices.Sorted(maps.Keys(s.objects)) {
		for _, kind := range slices.Sorted(maps.Keys(s.objects[id])) {
			out = append(out, s.objects[id][kind])
		}
	}
	return out
}

// Count returns the number of objects of a kind.
func (s *Scene) Count(kind string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(kind)
}

func (s *Scene) countLocked(kind string) int {
	return lo.CountBy(lo.Values(s.objects), func(byKind map[string]Object) bool {
		_, ok := byKind[kind]
		return ok
	})
}

func (s *Scene) handle(participantID, kind string) domain.RenderHandle {
	return domain.RenderHandle{ID: uuid.NewString(), ParticipantID: participantID, Kind: kind}
}

func (s *Scene) putLocked(participantID string, object Object) {
	byKind, ok := s.objects[participantID]
	if !ok {
		byKind = make(map[string]Object)
		s.objects[participantID] = byKind
	}
	byKind[object.Handle.Kind] = object
}

func (s *Scene) deleteLocked(participantID, kind string) {
	byKind, ok := s.objects[participantID]
	if !ok {
		return
	}
	delete(byKind, kind)
	if len(byKind) == 0 {
		delete(s.objects, participantID)
	}
}
