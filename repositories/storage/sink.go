package storage

import (
	"collab-lab/domain"
	"collab-lab/repositories"
	"context"

	"github.com/google/uuid"
)

// DiskSink records every participant change into the presence log.
type DiskSink struct {
	repository repositories.IPresenceRepository
}

func NewDiskSink(repository repositories.IPresenceRepository) DiskSink {
	return DiskSink{repository: repository}
}

func (d DiskSink) Consume(ctx context.Context, change domain.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.repository.StoreChange(toDiskChange(change))
}

func toDiskChange(change domain.Change) repositories.DiskChange {
	return repositories.DiskChange{
		ID:          uuid.New(),
		Room:        change.Room,
		Kind:        change.Kind,
		Participant: change.Participant,
		At:          change.At,
	}
}
