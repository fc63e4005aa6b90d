//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"collab-lab/domain"
	"collab-lab/domain/event"
	"context"
	"iter"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// The supervisor restarts it on panic
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Unsubscribe detaches an observer. Calling it twice is a no-op.
type Unsubscribe func()

// RealtimeChannel is the pub/sub primitive of one room, supplied by the surrounding system.
// Callbacks are invoked in delivery order and never concurrently with each other.
type RealtimeChannel interface {
	SubscribeToParticipantJoined(cb func(event.Presence)) Unsubscribe
	SubscribeToParticipantLeft(cb func(event.Presence)) Unsubscribe
	SubscribeToParticipantUpdated(cb func(event.Presence)) Unsubscribe
	SubscribeToRoomInfoUpdated(cb func(event.RoomInfo)) Unsubscribe
	// SetParticipantData publishes a partial record of the local participant.
	SetParticipantData(data map[string]any) error
	// GetParticipants requests a snapshot; cb fires asynchronously, possibly
	// more than once, until a delivered snapshot has been handed over.
	GetParticipants(cb func(event.Snapshot))
}

// RenderBackend is the rendering collaborator (3D engine, plugin) driven by the capability adapter.
type RenderBackend interface {
	CreateAvatar(ctx context.Context, participant domain.Participant) (domain.RenderHandle, error)
	DestroyAvatar(participant domain.Participant)
	CreatePointer(ctx context.Context, participant domain.Participant) (domain.RenderHandle, error)
	DestroyPointer(participant domain.Participant)
}

// NameLabeler is implemented by backends able to attach a name label to an avatar.
type NameLabeler interface {
	CreateName(participant domain.Participant, avatar domain.RenderHandle) error
}

// EventSink consumes registry changes outside the synchronous path (history, storage).
type EventSink interface {
	Consume(ctx context.Context, change domain.Change) error
}

type IRegistry interface {
	SetLocal(participant domain.Participant) error
	Upsert(participant domain.Participant) (domain.Participant, domain.ChangeKind)
	Remove(id string) (domain.Participant, bool)
	Get(id string) (domain.Participant, bool)
	List() iter.Seq[domain.Participant]
	IsLocal(id string) bool
	ResolveClientID(clientID string) (string, bool)
	Observe(fn func(domain.Change)) Unsubscribe
}
