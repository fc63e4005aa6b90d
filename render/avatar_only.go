package render

import (
	"collab-lab/domain"
	"context"
)

// AvatarOnly is a backend for hosts that cannot draw pointers nor labels.
// Pointer calls are accepted and ignored.
type AvatarOnly struct {
	scene *Scene
}

func NewAvatarOnly(scene *Scene) AvatarOnly {
	return AvatarOnly{scene: scene}
}

func (a AvatarOnly) CreateAvatar(ctx context.Context, participant domain.Participant) (domain.RenderHandle, error) {
	return a.scene.CreateAvatar(ctx, participant)
}

func (a AvatarOnly) DestroyAvatar(participant domain.Participant) {
	a.scene.DestroyAvatar(participant)
}

func (a AvatarOnly) CreatePointer(context.Context, domain.Participant) (domain.RenderHandle, error) {
	return domain.RenderHandle{}, nil
}

func (a AvatarOnly) DestroyPointer(domain.Participant) {}
