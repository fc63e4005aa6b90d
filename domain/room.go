package domain

type RoomID string

// RoomProperties are the room-level custom properties shared by all members.
type RoomProperties struct {
	FollowUserID string
	Custom       map[string]any
}

// RenderHandle identifies a visual object created by a rendering backend.
type RenderHandle struct {
	ID            string
	ParticipantID string
	Kind          string
}

const (
	HandleAvatar  = "avatar"
	HandlePointer = "pointer"
	HandleName    = "name"
)
