// Package domain contains core concepts of the collaboration room.
// This file defines Participant entities and related invariants.
// No runtime, network, or rendering logic should be added here.
package domain

// Vector3 is a position or a rotation in 3D space.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Avatar references the model used to render a participant and its thumbnail.
type Avatar struct {
	Model     string
	Thumbnail string
}

// AvatarConfig carries rendering parameters of an avatar.
// It is independent of the Avatar itself: a participant may carry a config without a model.
type AvatarConfig struct {
	Scale   float64
	Height  float64
	OriginX float64
	OriginY float64
	OriginZ float64
}

// Equal compares two configs by value, nil being equal only to nil.
func (c *AvatarConfig) Equal(other *AvatarConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Participant is one occupant of a room.
//
// Optional fields are pointers or empty strings; during a merge an absent field
// never clears the existing value. Local is derived by the registry and is only
// meaningful on views it hands out.
type Participant struct {
	ID           string
	ConnectionID string
	Name         string
	Color        string
	Avatar       *Avatar
	AvatarConfig *AvatarConfig
	Position     *Vector3
	Rotation     *Vector3
	Local        bool
}

// Merge applies the fields present in partial on top of p (shallow merge).
// The ID is never changed.
func (p Participant) Merge(partial Participant) Participant {
	if partial.ConnectionID != "" {
		p.ConnectionID = partial.ConnectionID
	}
	if partial.Name != "" {
		p.Name = partial.Name
	}
	if partial.Color != "" {
		p.Color = partial.Color
	}
	if partial.Avatar != nil {
		p.Avatar = partial.Avatar
	}
	if partial.AvatarConfig != nil {
		p.AvatarConfig = partial.AvatarConfig
	}
	if partial.Position != nil {
		p.Position = partial.Position
	}
	if partial.Rotation != nil {
		p.Rotation = partial.Rotation
	}
	return p
}

// Clone returns a deep copy so that callers never share pointers with the registry.
func (p Participant) Clone() Participant {
	if p.Avatar != nil {
		a := *p.Avatar
		p.Avatar = &a
	}
	if p.AvatarConfig != nil {
		c := *p.AvatarConfig
		p.AvatarConfig = &c
	}
	if p.Position != nil {
		v := *p.Position
		p.Position = &v
	}
	if p.Rotation != nil {
		v := *p.Rotation
		p.Rotation = &v
	}
	return p
}

// AvatarModel returns the model reference, empty when no avatar is set.
func (p Participant) AvatarModel() string {
	if p.Avatar == nil {
		return ""
	}
	return p.Avatar.Model
}

// StructurallyDiffers reports whether going from p to next requires the visual
// objects to be rebuilt: the avatar model or the avatar config changed.
func (p Participant) StructurallyDiffers(next Participant) bool {
	if p.AvatarModel() != next.AvatarModel() {
		return true
	}
	return !p.AvatarConfig.Equal(next.AvatarConfig)
}
