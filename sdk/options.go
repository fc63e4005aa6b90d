package sdk

import (
	"collab-lab/contract"
	"collab-lab/domain"
	"collab-lab/errors"
	"collab-lab/runtime"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Options is what the host application passes to Init.
type Options struct {
	Room         string `validate:"required"`
	APIKey       string `validate:"required,startswith=ck_"`
	Participant  ParticipantOptions
	Capabilities CapabilityOptions
	// ConfigURL is fetched once during Init when set. Remote values override Capabilities.
	ConfigURL        string `validate:"omitempty,url"`
	WaitReady        bool
	ReadyTimeout     time.Duration `validate:"gte=0"`
	BufferSize       int           `validate:"gte=0"`
	TimelineCapacity int           `validate:"gte=0"`
}

type ParticipantOptions struct {
	ID           string `validate:"required"`
	Name         string `validate:"max=64"`
	Color        string `validate:"omitempty,hexcolor"`
	Avatar       *domain.Avatar
	AvatarConfig *domain.AvatarConfig
}

type CapabilityOptions struct {
	Avatars           bool
	Pointers          bool
	RenderLocalAvatar bool
}

// Dependencies are the collaborators supplied by the surrounding system.
// Only Channel is mandatory.
type Dependencies struct {
	Channel       contract.RealtimeChannel
	Backend       contract.RenderBackend
	Authenticator Authenticator
	ConfigFetcher ConfigFetcher
	Sinks         []contract.EventSink
	Log           *slog.Logger
}

const defaultReadyTimeout = 10 * time.Second

// Validate checks the struct tags and wraps any failure as ErrInvalidOptions.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	return nil
}

func (p ParticipantOptions) participant() domain.Participant {
	return domain.Participant{
		ID:           p.ID,
		Name:         p.Name,
		Color:        p.Color,
		Avatar:       p.Avatar,
		AvatarConfig: p.AvatarConfig,
	}
}

// capabilities merges the remote toggles over the local ones.
func (o Options) capabilities(remote RemoteConfig) runtime.CapabilityConfig {
	config := runtime.CapabilityConfig{
		AvatarsEnabled:    o.Capabilities.Avatars,
		PointersEnabled:   o.Capabilities.Pointers,
		RenderLocalAvatar: o.Capabilities.RenderLocalAvatar,
	}
	if remote.Avatars != nil {
		config.AvatarsEnabled = *remote.Avatars
	}
	if remote.Pointers != nil {
		config.PointersEnabled = *remote.Pointers
	}
	if remote.RenderLocalAvatar != nil {
		config.RenderLocalAvatar = *remote.RenderLocalAvatar
	}
	return config
}

func (o Options) readyTimeout() time.Duration {
	if o.ReadyTimeout <= 0 {
		return defaultReadyTimeout
	}
	return o.ReadyTimeout
}
