package projection

import (
	"collab-lab/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeline_Consume_Keeps_Arrival_Order(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(10)
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, domain.Change{Kind: domain.ChangeCreated, Participant: domain.Participant{ID: "alice"}, At: time.Now()}))
	req.NoError(timeline.Consume(ctx, domain.Change{Kind: domain.ChangeRemoved, Participant: domain.Participant{ID: "alice"}, At: time.Now()}))

	changes := timeline.Changes()
	req.Len(changes, 2)
	req.Equal(domain.ChangeCreated, changes[0].Kind)
	req.Equal(domain.ChangeRemoved, changes[1].Kind)
}

func TestTimeline_Drops_Oldest_When_Full(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(2)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		req.NoError(timeline.Consume(ctx, domain.Change{Kind: domain.ChangeCreated, Participant: domain.Participant{ID: id}}))
	}

	changes := timeline.Changes()
	req.Len(changes, 2)
	req.Equal("b", changes[0].Participant.ID)
	req.Equal("c", changes[1].Participant.ID)
	req.Equal("c", timeline.Last(1)[0].Participant.ID)
	req.Len(timeline.Last(10), 2)
	req.Nil(timeline.Last(0))
}
