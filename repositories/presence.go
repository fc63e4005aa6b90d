//go:generate go run go.uber.org/mock/mockgen -source=presence.go -destination=../mocks/mock_presence_repository.go -package=mocks
package repositories

import (
	"collab-lab/domain"
	"collab-lab/domain/event"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const presencePrefix = "presence"

type IPresenceRepository interface {
	StoreChange(change DiskChange) error
	GetChanges(room domain.RoomID, cursor *string) ([]DiskChange, *string, error)
}

// DiskChange is one entry of a room's presence log.
type DiskChange struct {
	ID          uuid.UUID
	Room        domain.RoomID
	Kind        domain.ChangeKind
	Participant domain.Participant
	At          time.Time
}

type PresenceRepository struct {
	db           *badger.DB
	log          *slog.Logger
	limitChanges *int
}

func NewPresenceRepository(db *badger.DB, log *slog.Logger, limitChanges *int) PresenceRepository {
	return PresenceRepository{db: db, log: log, limitChanges: limitChanges}
}

// PresenceKeyPrefix is the badger prefix holding a room's log.
func PresenceKeyPrefix(room domain.RoomID) string {
	return fmt.Sprintf("%s:%s:", presencePrefix, room)
}

// StoreChange persists a change under "presence:{room}:{timestamp_padded}:{uuid}".
// The 19-digit padding keeps keys in chronological order and the uuid separates
// two changes recorded in the same nanosecond.
func (r PresenceRepository) StoreChange(change DiskChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	key := fmt.Sprintf("%s%019d:%s", PresenceKeyPrefix(change.Room), change.At.UnixNano(), change.ID)
	record, err := toRecord(change)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetChanges returns the room's changes from the newest to the oldest.
// The returned cursor resumes right after the last returned change.
func (r PresenceRepository) GetChanges(room domain.RoomID, cursor *string) ([]DiskChange, *string, error) {
	var values [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := PresenceKeyPrefix(room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(prefixStr), []byte("9999999999999999999")...)
		default:
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limitChanges != nil && len(values) == *r.limitChanges {
				r.log.Debug(fmt.Sprintf("Maximum of %d changes reached", *r.limitChanges))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				values = append(values, value)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	changes := make([]DiskChange, 0, len(values))
	for _, b := range values {
		change, err := decode(room, b)
		if err != nil {
			return nil, nil, err
		}
		changes = append(changes, change)
	}
	return changes, &lastKey, nil
}

// DecodeChange turns a raw badger entry of the presence log back into a change.
// Used by the inspection tools, which iterate keys without knowing the room.
func DecodeChange(key string, value []byte) (DiskChange, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 || parts[0] != presencePrefix {
		return DiskChange{}, fmt.Errorf("not a presence key: %q", key)
	}
	return decode(domain.RoomID(parts[1]), value)
}

func decode(room domain.RoomID, value []byte) (DiskChange, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(value, &record); err != nil {
		return DiskChange{}, err
	}
	return fromRecord(room, &record)
}

func toRecord(change DiskChange) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":          change.ID.String(),
		"kind":        string(change.Kind),
		"at":          change.At.UTC().Format(time.RFC3339Nano),
		"participant": event.ToData(change.Participant),
	})
}

func fromRecord(room domain.RoomID, record *structpb.Struct) (DiskChange, error) {
	fields := record.AsMap()
	rawID, _ := fields["id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return DiskChange{}, err
	}
	kind, _ := fields["kind"].(string)
	rawAt, _ := fields["at"].(string)
	at, err := time.Parse(time.RFC3339Nano, rawAt)
	if err != nil {
		return DiskChange{}, err
	}
	data, _ := fields["participant"].(map[string]any)
	participant, err := event.ParseParticipant(event.SnapshotType, event.Presence{Data: data})
	if err != nil {
		return DiskChange{}, err
	}
	return DiskChange{
		ID:          id,
		Room:        room,
		Kind:        domain.ChangeKind(kind),
		Participant: participant,
		At:          at,
	}, nil
}
