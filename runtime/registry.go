package runtime

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/observer"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Registry owns the participants of one room, local and remote.
//
// Identity is the participant id: an add for a known id is an update and a
// mutation for an unknown id is an add, so the registry never holds an id twice.
// Observers are notified after the lock is released, in mutation order.
type Registry struct {
	mu           sync.RWMutex
	room         domain.RoomID
	localID      string
	participants map[string]domain.Participant
	observers    *observer.List[domain.Change]
	now          func() time.Time
}

var _ contract.IRegistry = (*Registry)(nil)

func NewRegistry(room domain.RoomID) *Registry {
	return &Registry{
		room:         room,
		participants: make(map[string]domain.Participant),
		observers:    observer.NewList[domain.Change](),
		now:          time.Now,
	}
}

// SetLocal installs the local participant record.
// It can be called once per registry lifetime unless ResetLocal is called in between.
func (r *Registry) SetLocal(participant domain.Participant) error {
	if participant.ID == "" {
		return fmt.Errorf("%w: local participant without id", errors.ErrInvalidState)
	}

	r.mu.Lock()
	if r.localID != "" {
		r.mu.Unlock()
		return fmt.Errorf("%w: local participant already set to %q", errors.ErrInvalidState, r.localID)
	}
	r.localID = participant.ID
	record, kind := r.upsertLocked(participant)
	r.mu.Unlock()

	r.notify(kind, record)
	return nil
}

// ResetLocal forgets the local participant so that SetLocal can be called again.
func (r *Registry) ResetLocal() {
	r.mu.Lock()
	localID := r.localID
	r.localID = ""
	record, ok := r.participants[localID]
	if ok {
		delete(r.participants, localID)
	}
	r.mu.Unlock()

	if ok {
		record.Local = true
		r.notify(domain.ChangeRemoved, record)
	}
}

// Upsert inserts the participant if its id is unseen, otherwise merges the present
// fields into the existing record. It returns the full resulting record and whether
// it was created or updated. A participant without id is ignored and reported with an empty kind.
func (r *Registry) Upsert(participant domain.Participant) (domain.Participant, domain.ChangeKind) {
	if participant.ID == "" {
		return domain.Participant{}, ""
	}
	r.mu.Lock()
	record, kind := r.upsertLocked(participant)
	r.mu.Unlock()

	r.notify(kind, record)
	return record, kind
}

func (r *Registry) upsertLocked(participant domain.Participant) (domain.Participant, domain.ChangeKind) {
	kind := domain.ChangeCreated
	record := participant.Clone()
	if existing, ok := r.participants[participant.ID]; ok {
		kind = domain.ChangeUpdated
		record = existing.Merge(participant.Clone())
	}
	record.Local = false
	r.participants[record.ID] = record
	return r.viewLocked(record), kind
}

// Remove deletes the record if present. Removing an unknown id is a no-op:
// leave events may be delivered more than once.
func (r *Registry) Remove(id string) (domain.Participant, bool) {
	r.mu.Lock()
	record, ok := r.participants[id]
	if ok {
		delete(r.participants, id)
		record = r.viewLocked(record)
	}
	r.mu.Unlock()

	if ok {
		r.notify(domain.ChangeRemoved, record)
	}
	return record, ok
}

func (r *Registry) Get(id string) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.participants[id]
	if !ok {
		return domain.Participant{}, false
	}
	return r.viewLocked(record), true
}

// List returns the participants as they are when List is called.
// The sequence can be ranged over several times and always yields the same snapshot.
func (r *Registry) List() iter.Seq[domain.Participant] {
	r.mu.RLock()
	snapshot := lo.MapToSlice(r.participants, func(_ string, p domain.Participant) domain.Participant {
		return r.viewLocked(p)
	})
	r.mu.RUnlock()

	return func(yield func(domain.Participant) bool) {
		for _, p := range snapshot {
			if !yield(p.Clone()) {
				return
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

func (r *Registry) LocalID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.localID
}

func (r *Registry) IsLocal(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return id != "" && id == r.localID
}

// ResolveClientID maps a provider client id to a participant id.
// The connection id recorded at join time wins over a bare id match.
func (r *Registry) ResolveClientID(clientID string) (string, bool) {
	if clientID == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.participants {
		if p.ConnectionID == clientID {
			return id, true
		}
	}
	if _, ok := r.participants[clientID]; ok {
		return clientID, true
	}
	return "", false
}

// Observe registers fn for every created, updated and removed change.
func (r *Registry) Observe(fn func(domain.Change)) contract.Unsubscribe {
	return r.observers.Add(fn)
}

// Reset tears the registry down: records and observers are discarded without notification.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.participants = make(map[string]domain.Participant)
	r.localID = ""
	r.mu.Unlock()
	r.observers.Clear()
}

func (r *Registry) viewLocked(p domain.Participant) domain.Participant {
	view := p.Clone()
	view.Local = p.ID == r.localID
	return view
}

func (r *Registry) notify(kind domain.ChangeKind, participant domain.Participant) {
	r.observers.Notify(domain.Change{
		Room:        r.room,
		Kind:        kind,
		Participant: participant,
		At:          r.now(),
	})
}
