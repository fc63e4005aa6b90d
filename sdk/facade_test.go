package sdk_test

import (
	"collab-lab/auth"
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/mocks"
	"collab-lab/realtime"
	"collab-lab/render"
	"collab-lab/sdk"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var secret = []byte("test-secret")

func apiKey(t *testing.T, room string, ttl time.Duration) string {
	t.Helper()
	key, err := auth.GenerateToken(secret, "project-1", room, ttl)
	require.NoError(t, err)
	return key
}

func options(t *testing.T, id string) sdk.Options {
	return sdk.Options{
		Room:   "room-1",
		APIKey: apiKey(t, "room-1", time.Hour),
		Participant: sdk.ParticipantOptions{
			ID:           id,
			Name:         id,
			Avatar:       &domain.Avatar{Model: id + ".glb"},
			AvatarConfig: &domain.AvatarConfig{Scale: 1},
		},
		Capabilities: sdk.CapabilityOptions{Avatars: true, Pointers: true},
		WaitReady:    true,
		ReadyTimeout: time.Second,
	}
}

func initIn(t *testing.T, room *realtime.MemoryRoom, opts sdk.Options) (*sdk.Collaboration, *render.Scene) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	scene := render.NewScene(log, 0)
	collaboration, err := sdk.Init(context.Background(), opts, sdk.Dependencies{
		Channel: room.Open("conn-" + opts.Participant.ID),
		Backend: scene,
		Log:     log,
	})
	require.NoError(t, err)
	t.Cleanup(collaboration.Destroy)
	return collaboration, scene
}

func TestInit_Rejects_Invalid_Options(t *testing.T) {
	room := realtime.NewMemoryRoom()

	cases := map[string]func(o *sdk.Options){
		"missing room":        func(o *sdk.Options) { o.Room = "" },
		"key without prefix":  func(o *sdk.Options) { o.APIKey = "not-a-key" },
		"missing participant": func(o *sdk.Options) { o.Participant.ID = "" },
		"invalid colour":      func(o *sdk.Options) { o.Participant.Color = "blue" },
		"invalid config url":  func(o *sdk.Options) { o.ConfigURL = "::" },
		"negative timeout":    func(o *sdk.Options) { o.ReadyTimeout = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := options(t, "alice")
			mutate(&opts)

			_, err := sdk.Init(context.Background(), opts, sdk.Dependencies{Channel: room.Open("conn")})

			require.ErrorIs(t, err, errors.ErrInvalidOptions)
		})
	}
}

func TestInit_Requires_A_Channel(t *testing.T) {
	_, err := sdk.Init(context.Background(), options(t, "alice"), sdk.Dependencies{})
	require.ErrorIs(t, err, errors.ErrInvalidOptions)
}

func TestInit_Authentication_Failures_Leave_Nothing_Behind(t *testing.T) {
	t.Run("key scoped to another room", func(t *testing.T) {
		req := require.New(t)
		room := realtime.NewMemoryRoom()
		opts := options(t, "alice")
		opts.APIKey = apiKey(t, "room-2", time.Hour)

		_, err := sdk.Init(context.Background(), opts, sdk.Dependencies{Channel: room.Open("conn-alice")})

		req.ErrorIs(err, errors.ErrRoomMismatch)
		req.Empty(room.Members())
	})

	t.Run("expired key", func(t *testing.T) {
		req := require.New(t)
		room := realtime.NewMemoryRoom()
		opts := options(t, "alice")
		opts.APIKey = apiKey(t, "room-1", -time.Minute)

		_, err := sdk.Init(context.Background(), opts, sdk.Dependencies{Channel: room.Open("conn-alice")})

		req.ErrorIs(err, errors.ErrUnauthorized)
		req.Empty(room.Members())
	})

	t.Run("wildcard key is accepted", func(t *testing.T) {
		opts := options(t, "alice")
		opts.APIKey = apiKey(t, auth.AnyRoom, time.Hour)
		collaboration, _ := initIn(t, realtime.NewMemoryRoom(), opts)
		require.Equal(t, "project-1", collaboration.Project())
	})
}

func TestInit_Applies_Remote_Config(t *testing.T) {
	req := require.New(t)

	// Given a backend disabling avatars for the project
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"avatars": false}`))
	}))
	defer server.Close()

	room := realtime.NewMemoryRoom()
	initIn(t, room, options(t, "bob"))
	opts := options(t, "alice")
	opts.ConfigURL = server.URL

	// When alice initializes with avatars enabled locally
	alice, scene := initIn(t, room, opts)

	// Then the remote toggle wins and bob is known but not rendered
	req.Equal("Bearer "+opts.APIKey, authorization)
	req.Len(alice.Participants(), 2)
	req.Empty(alice.GetAvatars())
	req.Zero(scene.Count(domain.HandleAvatar))
}

func TestInit_Remote_Config_Failure_Is_Surfaced(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	room := realtime.NewMemoryRoom()
	opts := options(t, "alice")
	opts.ConfigURL = server.URL

	_, err := sdk.Init(context.Background(), opts, sdk.Dependencies{Channel: room.Open("conn-alice")})

	req.ErrorIs(err, errors.ErrConfigFetch)
	req.Empty(room.Members())
}

func TestInit_Ready_Timeout_Stops_The_Session(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	channel := mocks.NewMockRealtimeChannel(ctrl)

	// Given a channel that never answers the snapshot request
	unsubscribed := 0
	unsubscribe := contract.Unsubscribe(func() { unsubscribed++ })
	channel.EXPECT().SetParticipantData(gomock.Any()).Return(nil)
	channel.EXPECT().SubscribeToParticipantJoined(gomock.Any()).Return(unsubscribe)
	channel.EXPECT().SubscribeToParticipantLeft(gomock.Any()).Return(unsubscribe)
	channel.EXPECT().SubscribeToParticipantUpdated(gomock.Any()).Return(unsubscribe)
	channel.EXPECT().SubscribeToRoomInfoUpdated(gomock.Any()).Return(unsubscribe)
	channel.EXPECT().GetParticipants(gomock.Any())

	opts := options(t, "alice")
	opts.ReadyTimeout = 50 * time.Millisecond

	// When initializing
	_, err := sdk.Init(context.Background(), opts, sdk.Dependencies{
		Channel: channel,
		Log:     logs.GetLoggerFromLevel(slog.LevelDebug),
	})

	// Then Init fails and every observer has been removed
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Equal(4, unsubscribed)
}

func TestCollaboration_Surface(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()

	// Given alice and bob in the same room, carol without avatar config
	alice, aliceScene := initIn(t, room, options(t, "alice"))
	initIn(t, room, options(t, "bob"))
	carol := options(t, "carol")
	carol.Participant.AvatarConfig = nil
	initIn(t, room, carol)

	// Then alice renders the others only and lists the 3D participants
	req.Eventually(func() bool { return len(alice.Participants()) == 3 }, time.Second, 10*time.Millisecond)
	on3D := alice.GetParticipantsOn3D()
	req.Len(on3D, 2)
	req.Equal("alice", on3D[0].ID)
	req.Equal("bob", on3D[1].ID)
	req.Contains(alice.GetAvatars(), "bob")
	req.NotContains(alice.GetAvatars(), "carol")
	req.NotContains(alice.GetAvatars(), "alice")
	req.Equal(1, aliceScene.Count(domain.HandlePointer))

	local, ok := alice.Local()
	req.True(ok)
	req.True(local.Local)

	// When avatars are disabled and dave joins
	alice.DisableAvatars()
	initIn(t, room, options(t, "dave"))

	// Then dave is known but not rendered, and the existing avatars stay
	req.Len(alice.Participants(), 4)
	req.NotContains(alice.GetAvatars(), "dave")
	req.Contains(alice.GetAvatars(), "bob")
}

func TestCollaboration_Observe_And_UpdateLocal(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	alice, _ := initIn(t, room, options(t, "alice"))
	bob, _ := initIn(t, room, options(t, "bob"))

	var changes []domain.Change
	unsubscribe := alice.Observe(func(change domain.Change) { changes = append(changes, change) })
	defer unsubscribe()

	// When bob renames himself
	req.NoError(bob.UpdateLocal(context.Background(), domain.Participant{Name: "Bobby"}))

	// Then alice observes an update with the merged record
	req.Len(changes, 1)
	req.Equal(domain.ChangeUpdated, changes[0].Kind)
	req.Equal("Bobby", changes[0].Participant.Name)
	req.Equal("bob.glb", changes[0].Participant.AvatarModel())
	req.Eventually(func() bool { return len(alice.Timeline()) > 0 }, time.Second, 10*time.Millisecond)
}

func TestCollaboration_Plugin_Lifecycle(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	initIn(t, room, options(t, "bob"))

	// Given alice initialized without any backend
	alice, err := sdk.Init(context.Background(), options(t, "alice"), sdk.Dependencies{
		Channel: room.Open("conn-alice"),
		Log:     log,
	})
	req.NoError(err)
	req.Empty(alice.GetAvatars())

	// When a plugin connects, bob is spawned
	scene := render.NewScene(log, 0)
	req.NoError(alice.ConnectPlugin(context.Background(), scene))
	req.Contains(alice.GetAvatars(), "bob")
	req.ErrorIs(alice.ConnectPlugin(context.Background(), scene), errors.ErrInvalidState)

	// When it disconnects, everything it rendered is gone
	alice.DisconnectPlugin()
	req.Empty(alice.GetAvatars())
	req.Zero(scene.Count(domain.HandleAvatar))

	// Destroy is terminal and idempotent
	alice.Destroy()
	alice.Destroy()
	req.ErrorIs(alice.UpdateLocal(context.Background(), domain.Participant{Name: "x"}), errors.ErrNotStarted)
}

func TestInit_Session_Outlives_The_Init_Context(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given alice initialized with a context cancelled right after Init
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	alice, err := sdk.Init(ctx, options(t, "alice"), sdk.Dependencies{
		Channel: room.Open("conn-alice"),
		Backend: render.NewScene(log, 0),
		Log:     log,
	})
	req.NoError(err)
	t.Cleanup(alice.Destroy)
	cancel()

	// When bob joins
	initIn(t, room, options(t, "bob"))

	// Then alice still renders and records him
	req.Contains(alice.GetAvatars(), "bob")
	req.Eventually(func() bool {
		for _, change := range alice.Timeline() {
			if change.Participant.ID == "bob" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestCollaboration_Observer_Can_Update_The_Local_Participant(t *testing.T) {
	req := require.New(t)
	room := realtime.NewMemoryRoom()
	alice, _ := initIn(t, room, options(t, "alice"))

	// Given an observer renaming alice when bob shows up
	unsubscribe := alice.Observe(func(change domain.Change) {
		if change.Kind == domain.ChangeCreated && change.Participant.ID == "bob" {
			_ = alice.UpdateLocal(context.Background(), domain.Participant{Name: "Alice"})
		}
	})
	defer unsubscribe()

	// When bob joins
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	bobOptions := options(t, "bob")
	done := make(chan error, 1)
	go func() {
		bob, err := sdk.Init(context.Background(), bobOptions, sdk.Dependencies{
			Channel: room.Open("conn-bob"),
			Backend: render.NewScene(log, 0),
			Log:     log,
		})
		if err == nil {
			t.Cleanup(bob.Destroy)
		}
		done <- err
	}()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("bob's join never completed")
	}

	// Then the rename went through and the session still tears down
	local, ok := alice.Local()
	req.True(ok)
	req.Equal("Alice", local.Name)
	destroyed := make(chan struct{})
	go func() {
		alice.Destroy()
		close(destroyed)
	}()
	select {
	case <-destroyed:
	case <-time.After(time.Second):
		t.Fatal("destroy never returned")
	}
}
