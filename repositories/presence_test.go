package repositories

import (
	"collab-lab/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Store_And_Read_Changes_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := NewPresenceRepository(openDB(t), slog.Default(), nil)
	room := domain.RoomID("room-1")
	at := time.Now().UTC()

	// Given three changes recorded for a room and one for another room
	changes := []DiskChange{
		{ID: uuid.New(), Room: room, Kind: domain.ChangeCreated, At: at,
			Participant: domain.Participant{ID: "alice", Name: "Alice", AvatarConfig: &domain.AvatarConfig{Scale: 1.5}}},
		{ID: uuid.New(), Room: room, Kind: domain.ChangeUpdated, At: at.Add(time.Second),
			Participant: domain.Participant{ID: "alice", Position: &domain.Vector3{X: 1, Y: 2, Z: 3}}},
		{ID: uuid.New(), Room: room, Kind: domain.ChangeRemoved, At: at.Add(2 * time.Second),
			Participant: domain.Participant{ID: "alice"}},
		{ID: uuid.New(), Room: "other", Kind: domain.ChangeCreated, At: at,
			Participant: domain.Participant{ID: "bob"}},
	}
	for _, c := range changes {
		req.NoError(repository.StoreChange(c))
	}

	// When the log of the first room is read
	fetched, cursor, err := repository.GetChanges(room, nil)

	// Then it holds only that room's changes, newest first, with their payload
	req.NoError(err)
	req.NotNil(cursor)
	req.Len(fetched, 3)
	req.Equal(domain.ChangeRemoved, fetched[0].Kind)
	req.Equal(domain.ChangeCreated, fetched[2].Kind)
	req.Equal("Alice", fetched[2].Participant.Name)
	req.Equal(1.5, fetched[2].Participant.AvatarConfig.Scale)
	req.Equal(&domain.Vector3{X: 1, Y: 2, Z: 3}, fetched[1].Participant.Position)
	req.Equal(changes[0].ID, fetched[2].ID)
	req.True(changes[0].At.Equal(fetched[2].At))
}

func Test_Read_Changes_With_Limit_And_Cursor(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewPresenceRepository(openDB(t), slog.Default(), &limit)
	room := domain.RoomID("room-1")
	at := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		req.NoError(repository.StoreChange(DiskChange{
			Room: room, Kind: domain.ChangeCreated, At: at.Add(time.Duration(i) * time.Second),
			Participant: domain.Participant{ID: id},
		}))
	}

	first, cursor, err := repository.GetChanges(room, nil)
	req.NoError(err)
	req.Len(first, limit)
	req.Equal("c", first[0].Participant.ID)
	req.Equal("b", first[1].Participant.ID)

	second, _, err := repository.GetChanges(room, cursor)
	req.NoError(err)
	req.Len(second, 1)
	req.Equal("a", second[0].Participant.ID)
}

func Test_Decode_Raw_Entry(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewPresenceRepository(db, slog.Default(), nil)
	req.NoError(repository.StoreChange(DiskChange{Room: "room-1", Kind: domain.ChangeCreated,
		At: time.Now(), Participant: domain.Participant{ID: "alice", Name: "Alice"}}))

	// When the entry is read back without knowing its room
	var key string
	var value []byte
	req.NoError(db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		it.Rewind()
		key = string(it.Item().KeyCopy(nil))
		var err error
		value, err = it.Item().ValueCopy(nil)
		return err
	}))
	change, err := DecodeChange(key, value)

	// Then the room comes from the key
	req.NoError(err)
	req.Equal(domain.RoomID("room-1"), change.Room)
	req.Equal("Alice", change.Participant.Name)

	_, err = DecodeChange("analysis:x", value)
	req.Error(err)
}
