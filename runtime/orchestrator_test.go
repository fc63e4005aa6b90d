package runtime_test

import (
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/realtime"
	"collab-lab/render"
	"collab-lab/runtime"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type session struct {
	orchestrator *runtime.Orchestrator
	channel      *realtime.MemoryChannel
	scene        *render.Scene
}

func join(t *testing.T, room *realtime.MemoryRoom, local domain.Participant) session {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	channel := room.Open("conn-" + local.ID)
	orchestrator := runtime.NewOrchestrator(log, channel, runtime.OrchestratorConfig{
		Room:         "room-1",
		Local:        local,
		Capabilities: allEnabled(),
		SinkTimeout:  time.Second,
	})
	scene := render.NewScene(log, 0)
	require.NoError(t, orchestrator.Attach(context.Background(), scene))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		orchestrator.Stop()
		cancel()
	})
	require.NoError(t, orchestrator.Start(ctx))

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, orchestrator.WaitReady(waitCtx))
	return session{orchestrator: orchestrator, channel: channel, scene: scene}
}

func avatarParticipant(id, model string) domain.Participant {
	return domain.Participant{
		ID:           id,
		Name:         id,
		Avatar:       &domain.Avatar{Model: model},
		AvatarConfig: &domain.AvatarConfig{Scale: 1},
	}
}

func TestOrchestrator_Two_Sessions_See_Each_Other(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()

	// Given alice is alone in the room
	alice := join(t, room, avatarParticipant("alice", "a.glb"))
	req.Equal(1, alice.orchestrator.Registry().Len())

	// When bob joins
	bob := join(t, room, avatarParticipant("bob", "b.glb"))

	// Then each one sees the other, rendered, and never renders itself
	_, ok := alice.orchestrator.Registry().Get("bob")
	req.True(ok)
	_, ok = bob.orchestrator.Registry().Get("alice")
	req.True(ok)
	req.True(alice.orchestrator.Adapter().HasAvatar("bob"))
	req.False(alice.orchestrator.Adapter().HasAvatar("alice"))
	avatar, ok := bob.scene.Object("alice", domain.HandleAvatar)
	req.True(ok)
	req.Equal("a.glb", avatar.Model)

	// And alice's timeline records her own arrival then bob's
	created := func() []string {
		var ids []string
		for _, c := range alice.orchestrator.Timeline().Changes() {
			if c.Kind == domain.ChangeCreated {
				ids = append(ids, c.Participant.ID)
			}
		}
		return ids
	}
	req.Eventually(func() bool { return len(created()) == 2 }, time.Second, 10*time.Millisecond)
	req.Equal([]string{"alice", "bob"}, created())
}

func TestOrchestrator_UpdateLocal_Propagates(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	alice := join(t, room, avatarParticipant("alice", "a.glb"))
	bob := join(t, room, avatarParticipant("bob", "b.glb"))
	before, _ := bob.scene.Object("alice", domain.HandleAvatar)

	// When alice renames herself
	req.NoError(alice.orchestrator.UpdateLocal(context.Background(), domain.Participant{Name: "Ally"}))

	// Then bob's registry is updated without rebuilding her avatar
	p, _ := bob.orchestrator.Registry().Get("alice")
	req.Equal("Ally", p.Name)
	after, _ := bob.scene.Object("alice", domain.HandleAvatar)
	req.Equal(before.Handle.ID, after.Handle.ID)

	// When alice changes her avatar model
	req.NoError(alice.orchestrator.UpdateLocal(context.Background(), domain.Participant{Avatar: &domain.Avatar{Model: "c.glb"}}))

	// Then bob rebuilt it
	rebuilt, ok := bob.scene.Object("alice", domain.HandleAvatar)
	req.True(ok)
	req.Equal("c.glb", rebuilt.Model)
	req.NotEqual(before.Handle.ID, rebuilt.Handle.ID)
	local, _ := alice.orchestrator.Registry().Get("alice")
	req.True(local.Local)
	req.Equal("c.glb", local.AvatarModel())
}

func TestOrchestrator_Leave_Removes_Avatar(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	alice := join(t, room, avatarParticipant("alice", "a.glb"))
	bob := join(t, room, avatarParticipant("bob", "b.glb"))
	req.True(alice.orchestrator.Adapter().HasAvatar("bob"))

	// When bob's connection closes
	req.NoError(bob.channel.Close())

	// Then alice forgets him and his avatar disappears
	_, ok := alice.orchestrator.Registry().Get("bob")
	req.False(ok)
	_, ok = alice.scene.Object("bob", domain.HandleAvatar)
	req.False(ok)
}

func TestOrchestrator_Attach_Spawns_Existing_Participants(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	_ = join(t, room, avatarParticipant("bob", "b.glb"))

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	orchestrator := runtime.NewOrchestrator(log, room.Open("conn-alice"), runtime.OrchestratorConfig{
		Room:         "room-1",
		Local:        avatarParticipant("alice", "a.glb"),
		Capabilities: allEnabled(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req.NoError(orchestrator.Start(ctx))
	defer orchestrator.Stop()

	// Given no backend was attached when bob was discovered
	req.False(orchestrator.Adapter().HasAvatar("bob"))

	// When a scene is attached
	scene := render.NewScene(log, 0)
	req.NoError(orchestrator.Attach(ctx, scene))

	// Then bob is rendered with his pointer, alice is not
	req.Equal(1, scene.Count(domain.HandleAvatar))
	req.Equal(1, scene.Count(domain.HandlePointer))
	_, ok := scene.Object("alice", domain.HandleAvatar)
	req.False(ok)

	// Detaching removes everything
	orchestrator.Detach()
	req.Empty(scene.Objects())
}

func TestOrchestrator_Stop_Is_Terminal(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	alice := join(t, room, avatarParticipant("alice", "a.glb"))

	alice.orchestrator.Stop()
	alice.orchestrator.Stop()

	req.ErrorIs(alice.orchestrator.UpdateLocal(context.Background(), domain.Participant{Name: "x"}), errors.ErrNotStarted)
	req.ErrorIs(alice.orchestrator.Start(context.Background()), errors.ErrInvalidState)
	req.Zero(alice.orchestrator.Registry().Len())
}

func TestOrchestrator_Session_Outlives_The_Start_Context(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	orchestrator := runtime.NewOrchestrator(log, room.Open("conn-alice"), runtime.OrchestratorConfig{
		Room:         "room-1",
		Local:        avatarParticipant("alice", "a.glb"),
		Capabilities: allEnabled(),
		SinkTimeout:  time.Second,
	})
	scene := render.NewScene(log, 0)
	req.NoError(orchestrator.Attach(context.Background(), scene))

	// Given a start context cancelled right after Start
	ctx, cancel := context.WithCancel(context.Background())
	req.NoError(orchestrator.Start(ctx))
	defer orchestrator.Stop()
	cancel()

	// When bob joins afterwards
	_ = join(t, room, avatarParticipant("bob", "b.glb"))

	// Then bob is rendered and still reaches the timeline
	req.True(orchestrator.Adapter().HasAvatar("bob"))
	req.Eventually(func() bool {
		for _, change := range orchestrator.Timeline().Changes() {
			if change.Participant.ID == "bob" && change.Kind == domain.ChangeCreated {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
