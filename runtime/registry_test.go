package runtime

import (
	"collab-lab/domain"
	"collab-lab/errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func collect(r *Registry) []domain.Participant {
	return slices.Collect(r.List())
}

func ids(participants []domain.Participant) []string {
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		out = append(out, p.ID)
	}
	slices.Sort(out)
	return out
}

func TestRegistry_Upsert_Twice_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	participantID := uuid.NewString()

	// Given a participant is upserted once
	_, kind := registry.Upsert(domain.Participant{ID: participantID, Name: "Alice"})
	req.Equal(domain.ChangeCreated, kind)

	// When the same participant is upserted again with identical fields
	record, kind := registry.Upsert(domain.Participant{ID: participantID, Name: "Alice"})

	// Then a single record exists and the second call is an update
	req.Equal(domain.ChangeUpdated, kind)
	req.Equal("Alice", record.Name)
	req.Len(collect(registry), 1)
}

func TestRegistry_Upsert_Merges_Shallowly(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")

	registry.Upsert(domain.Participant{ID: "u2", Name: "Bob", AvatarConfig: &domain.AvatarConfig{Scale: 1}})

	// When a partial record without name arrives
	record, kind := registry.Upsert(domain.Participant{ID: "u2", Position: &domain.Vector3{X: 3}})

	// Then absent fields are preserved
	req.Equal(domain.ChangeUpdated, kind)
	req.Equal("Bob", record.Name)
	req.Equal(&domain.AvatarConfig{Scale: 1}, record.AvatarConfig)
	req.Equal(&domain.Vector3{X: 3}, record.Position)
}

func TestRegistry_Upsert_Without_ID_Is_Ignored(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")

	_, kind := registry.Upsert(domain.Participant{Name: "nobody"})

	req.Empty(kind)
	req.Zero(registry.Len())
}

func TestRegistry_SetLocal_Twice_Fails(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")

	req.NoError(registry.SetLocal(domain.Participant{ID: "u1"}))

	err := registry.SetLocal(domain.Participant{ID: "u9"})

	req.ErrorIs(err, errors.ErrInvalidState)
	req.Equal("u1", registry.LocalID())
	locals := 0
	for p := range registry.List() {
		if p.Local {
			locals++
		}
	}
	req.Equal(1, locals)
}

func TestRegistry_ResetLocal_Allows_A_New_Local(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	req.NoError(registry.SetLocal(domain.Participant{ID: "u1"}))

	registry.ResetLocal()
	req.NoError(registry.SetLocal(domain.Participant{ID: "u9"}))

	req.Equal([]string{"u9"}, ids(collect(registry)))
	req.True(registry.IsLocal("u9"))
	req.False(registry.IsLocal("u1"))
}

func TestRegistry_Remove_Absent_Is_NoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	registry.Upsert(domain.Participant{ID: "u2"})

	_, ok := registry.Remove("missing")

	req.False(ok)
	req.Len(collect(registry), 1)
}

func TestRegistry_Remove_Returns_Record(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	registry.Upsert(domain.Participant{ID: "u2", Name: "Bob"})

	removed, ok := registry.Remove("u2")

	req.True(ok)
	req.Equal("Bob", removed.Name)
	req.Empty(collect(registry))
}

func TestRegistry_List_Is_A_Snapshot(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	registry.Upsert(domain.Participant{ID: "u1"})

	// Given a sequence taken before a mutation
	seq := registry.List()
	registry.Upsert(domain.Participant{ID: "u2"})

	// Then it still reflects the state at call time, and can be ranged twice
	req.Equal([]string{"u1"}, ids(slices.Collect(seq)))
	req.Equal([]string{"u1"}, ids(slices.Collect(seq)))
	req.Equal([]string{"u1", "u2"}, ids(collect(registry)))
}

func TestRegistry_Views_Do_Not_Leak_Internal_State(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	record, _ := registry.Upsert(domain.Participant{ID: "u1", AvatarConfig: &domain.AvatarConfig{Scale: 1}})

	record.AvatarConfig.Scale = 42

	stored, ok := registry.Get("u1")
	req.True(ok)
	req.Equal(1.0, stored.AvatarConfig.Scale)
}

func TestRegistry_Observe_Notifies_Every_Mutation(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	var kinds []domain.ChangeKind
	unsubscribe := registry.Observe(func(c domain.Change) {
		req.Equal(domain.RoomID("room"), c.Room)
		kinds = append(kinds, c.Kind)
	})

	req.NoError(registry.SetLocal(domain.Participant{ID: "u1"}))
	registry.Upsert(domain.Participant{ID: "u2"})
	registry.Upsert(domain.Participant{ID: "u2", Name: "Bob"})
	registry.Remove("u2")
	registry.Remove("u2")

	req.Equal([]domain.ChangeKind{
		domain.ChangeCreated, domain.ChangeCreated, domain.ChangeUpdated, domain.ChangeRemoved,
	}, kinds)

	// When the observer is detached, nothing more is received
	unsubscribe()
	registry.Upsert(domain.Participant{ID: "u3"})
	req.Len(kinds, 4)
}

func TestRegistry_ResolveClientID(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	registry.Upsert(domain.Participant{ID: "alice", ConnectionID: "conn-1"})
	registry.Upsert(domain.Participant{ID: "bob"})

	id, ok := registry.ResolveClientID("conn-1")
	req.True(ok)
	req.Equal("alice", id)

	id, ok = registry.ResolveClientID("bob")
	req.True(ok)
	req.Equal("bob", id)

	_, ok = registry.ResolveClientID("unknown")
	req.False(ok)
}

func TestRegistry_Reset_Discards_Records_And_Observers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("room")
	calls := 0
	registry.Observe(func(domain.Change) { calls++ })
	req.NoError(registry.SetLocal(domain.Participant{ID: "u1"}))

	registry.Reset()
	registry.Upsert(domain.Participant{ID: "u2"})

	req.Equal(1, calls)
	req.Empty(registry.LocalID())
	req.Equal(1, registry.Len())
}
