package main

import (
	"bufio"
	"collab-lab/domain"
	"collab-lab/domain/event"
	"collab-lab/realtime"
	"collab-lab/render"
	"collab-lab/sdk"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	out := printer{out: os.Stdout, colours: config.Colours}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint, err := realtime.RoomURL(config.RelayURL, config.Room, config.APIKey)
	if err != nil {
		return err
	}
	channel, err := realtime.DialWSChannel(ctx, log, endpoint)
	if err != nil {
		return fmt.Errorf("connecting to relay: %w", err)
	}
	defer func() { _ = channel.Close() }()

	channelErr := make(chan error, 1)
	go func() { channelErr <- channel.Run(ctx) }()

	participant := sdk.ParticipantOptions{ID: config.Participant, Name: config.Name}
	if config.Model != "" {
		participant.Avatar = &domain.Avatar{Model: config.Model}
		participant.AvatarConfig = &domain.AvatarConfig{Scale: 1}
	}
	scene := render.NewScene(log, 0)
	collaboration, err := sdk.Init(ctx, sdk.Options{
		Room:         config.Room,
		APIKey:       config.APIKey,
		Participant:  participant,
		Capabilities: sdk.CapabilityOptions{Avatars: true, Pointers: true},
		ConfigURL:    config.ConfigURL,
		WaitReady:    true,
		ReadyTimeout: 10 * time.Second,
	}, sdk.Dependencies{Channel: channel, Backend: scene, Log: log})
	if err != nil {
		return err
	}
	defer collaboration.Destroy()

	showTable := func() {
		out.table(collaboration.Participants(), collaboration.GetAvatars(), collaboration.FollowedParticipant())
	}
	unsubscribe := collaboration.Observe(func(change domain.Change) {
		out.change(change)
		if change.Kind != domain.ChangeUpdated {
			showTable()
		}
	})
	defer unsubscribe()

	out.info("Joined %s as %s, %d participant(s) present", config.Room, config.Participant, len(collaboration.Participants()))
	showTable()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-channelErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd, err := parseCommand(line)
			if err != nil {
				out.info("%v", err)
				continue
			}
			switch {
			case cmd.name == "quit":
				return nil
			case cmd.name == "who":
				showTable()
			case cmd.follow != nil:
				if err := channel.SetRoomProperties(map[string]any{event.KeyFollowUserID: *cmd.follow}); err != nil {
					return err
				}
			case cmd.updatesLocal():
				if err := collaboration.UpdateLocal(ctx, cmd.partial); err != nil {
					return err
				}
			}
		}
	}
}
