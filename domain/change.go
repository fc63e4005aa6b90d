package domain

import "time"

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change is emitted by the registry for every successful upsert or remove.
type Change struct {
	Room        RoomID
	Kind        ChangeKind
	Participant Participant
	At          time.Time
}

func (c Change) RoomID() RoomID {
	return c.Room
}
