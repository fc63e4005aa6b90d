package realtime

import (
	"collab-lab/domain/event"
	"time"
)

// Wire types exchanged between a client and the relay.
const (
	TypeParticipantJoined  = "participant_joined"
	TypeParticipantLeft    = "participant_left"
	TypeParticipantUpdated = "participant_updated"
	TypeRoomInfoUpdated    = "room_info_updated"
	TypeParticipants       = "participants"
	TypeSetData            = "set_data"
	TypeSetRoomProps       = "set_room_props"
	TypeGetParticipants    = "get_participants"
)

// Message is the single envelope of the wire protocol.
// Participants is keyed by client id and only set on "participants" answers.
type Message struct {
	Type         string                    `json:"type"`
	ClientID     string                    `json:"clientId,omitempty"`
	Timestamp    int64                     `json:"timestamp,omitempty"`
	Data         map[string]any            `json:"data,omitempty"`
	Participants map[string]map[string]any `json:"participants,omitempty"`
	Empty        bool                      `json:"empty,omitempty"`
}

func (m Message) Presence() event.Presence {
	at := time.Now()
	if m.Timestamp > 0 {
		at = time.UnixMilli(m.Timestamp)
	}
	return event.Presence{ClientID: m.ClientID, Timestamp: at, Data: m.Data}
}

func (m Message) RoomInfo() event.RoomInfo {
	return event.RoomInfo{ClientID: m.ClientID, Data: m.Data}
}

func (m Message) Snapshot() event.Snapshot {
	participants := make(map[string]event.Presence, len(m.Participants))
	for clientID, data := range m.Participants {
		participants[clientID] = event.Presence{ClientID: clientID, Timestamp: time.Now(), Data: data}
	}
	return event.Snapshot{Participants: participants, RoomEmpty: m.Empty}
}

// SnapshotMessage builds the answer to a participants request.
func SnapshotMessage(members map[string]map[string]any) Message {
	return Message{Type: TypeParticipants, Participants: members, Empty: len(members) == 0}
}
