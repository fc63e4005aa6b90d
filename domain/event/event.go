// Package event holds the provider-shaped realtime events and the parsing
// boundary that turns them into typed domain values.
package event

import "time"

type Type string

const (
	ParticipantJoinedType  Type = "PARTICIPANT_JOINED"
	ParticipantLeftType    Type = "PARTICIPANT_LEFT"
	ParticipantUpdatedType Type = "PARTICIPANT_UPDATED"
	RoomInfoUpdatedType    Type = "ROOM_INFO_UPDATED"
	SnapshotType           Type = "SNAPSHOT"
	DroppedType            Type = "DROPPED"
)

// Presence is a participant lifecycle event as delivered by the realtime provider.
// Data is a free-form record; nothing in it is trusted before ParseParticipant.
type Presence struct {
	ClientID  string
	Timestamp time.Time
	Data      map[string]any
}

// RoomInfo carries room-level custom properties.
type RoomInfo struct {
	ClientID string
	Data     map[string]any
}

// Snapshot is the answer to a participants request.
// An empty Participants map without RoomEmpty means the provider has not delivered yet.
type Snapshot struct {
	Participants map[string]Presence
	RoomEmpty    bool
}

// Delivered reports whether the snapshot can release the startup gate.
func (s Snapshot) Delivered() bool {
	return len(s.Participants) > 0 || s.RoomEmpty
}
