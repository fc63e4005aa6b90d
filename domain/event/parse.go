package event

import (
	"collab-lab/domain"
	"collab-lab/errors"
	"encoding/json"
	"strings"
)

// Keys understood in a presence payload.
const (
	KeyID           = "id"
	KeyName         = "name"
	KeyColor        = "color"
	KeyAvatar       = "avatar"
	KeyAvatarConfig = "avatarConfig"
	KeyPosition     = "position"
	KeyRotation     = "rotation"
	KeyFollowUserID = "followUserId"
)

// ParseParticipant extracts a participant from a presence event.
//
// The participant id is data.id when it is a non-empty string, the event client id otherwise.
// When neither resolves, a *errors.MalformedEventError is returned and nothing should be mutated.
// Optional fields with an unexpected shape are skipped rather than rejected.
func ParseParticipant(kind Type, evt Presence) (domain.Participant, error) {
	id := strings.TrimSpace(stringField(evt.Data, KeyID))
	if id == "" {
		id = strings.TrimSpace(evt.ClientID)
	}
	if id == "" {
		return domain.Participant{}, &errors.MalformedEventError{
			Kind:     string(kind),
			ClientID: evt.ClientID,
			Reason:   "no resolvable participant id",
		}
	}

	p := domain.Participant{
		ID:           id,
		ConnectionID: evt.ClientID,
		Name:         stringField(evt.Data, KeyName),
		Color:        stringField(evt.Data, KeyColor),
	}
	if avatar, ok := mapField(evt.Data, KeyAvatar); ok {
		model := stringField(avatar, "model")
		thumbnail := stringField(avatar, "thumbnail")
		if model != "" || thumbnail != "" {
			p.Avatar = &domain.Avatar{Model: model, Thumbnail: thumbnail}
		}
	}
	if cfg, ok := mapField(evt.Data, KeyAvatarConfig); ok {
		p.AvatarConfig = &domain.AvatarConfig{
			Scale:   numberField(cfg, "scale"),
			Height:  numberField(cfg, "height"),
			OriginX: numberField(cfg, "originX"),
			OriginY: numberField(cfg, "originY"),
			OriginZ: numberField(cfg, "originZ"),
		}
	}
	p.Position = vectorField(evt.Data, KeyPosition)
	p.Rotation = vectorField(evt.Data, KeyRotation)
	return p, nil
}

// ParseRoomProperties extracts room-level properties. Unknown keys are kept in Custom.
func ParseRoomProperties(evt RoomInfo) domain.RoomProperties {
	props := domain.RoomProperties{
		FollowUserID: stringField(evt.Data, KeyFollowUserID),
		Custom:       make(map[string]any),
	}
	for k, v := range evt.Data {
		if k == KeyFollowUserID {
			continue
		}
		props.Custom[k] = v
	}
	return props
}

// ToData is the inverse of ParseParticipant, used to publish local changes.
// Only present fields are written so that the receiver merges rather than clears.
func ToData(p domain.Participant) map[string]any {
	data := map[string]any{KeyID: p.ID}
	if p.Name != "" {
		data[KeyName] = p.Name
	}
	if p.Color != "" {
		data[KeyColor] = p.Color
	}
	if p.Avatar != nil {
		data[KeyAvatar] = map[string]any{"model": p.Avatar.Model, "thumbnail": p.Avatar.Thumbnail}
	}
	if p.AvatarConfig != nil {
		data[KeyAvatarConfig] = map[string]any{
			"scale":   p.AvatarConfig.Scale,
			"height":  p.AvatarConfig.Height,
			"originX": p.AvatarConfig.OriginX,
			"originY": p.AvatarConfig.OriginY,
			"originZ": p.AvatarConfig.OriginZ,
		}
	}
	if p.Position != nil {
		data[KeyPosition] = vectorData(*p.Position)
	}
	if p.Rotation != nil {
		data[KeyRotation] = vectorData(*p.Rotation)
	}
	return data
}

func vectorData(v domain.Vector3) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y, "z": v.Z}
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}

func mapField(data map[string]any, key string) (map[string]any, bool) {
	if data == nil {
		return nil, false
	}
	m, ok := data[key].(map[string]any)
	return m, ok
}

func vectorField(data map[string]any, key string) *domain.Vector3 {
	m, ok := mapField(data, key)
	if !ok {
		return nil
	}
	return &domain.Vector3{
		X: numberField(m, "x"),
		Y: numberField(m, "y"),
		Z: numberField(m, "z"),
	}
}

// numberField accepts the numeric shapes produced by JSON decoders and Go callers.
func numberField(data map[string]any, key string) float64 {
	switch n := data[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
