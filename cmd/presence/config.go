package main

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RelayURL    string `envconfig:"COLLAB_RELAY_URL" default:"ws://localhost:8080"`
	APIKey      string `envconfig:"COLLAB_API_KEY" required:"true"`
	Room        string `envconfig:"COLLAB_ROOM" required:"true"`
	Participant string `envconfig:"COLLAB_PARTICIPANT" required:"true"`
	Name        string `envconfig:"COLLAB_NAME"`
	Model       string `envconfig:"COLLAB_AVATAR_MODEL"`
	ConfigURL   string `envconfig:"COLLAB_CONFIG_URL"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"WARN"`
	// COLLAB_COLOURS enables colorized change lines
	Colours bool `envconfig:"COLLAB_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
