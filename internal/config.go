package internal

import (
	"fmt"
	"time"
)

// Config is the relay configuration, read from the environment.
type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	GrpcPort          int           `env:"GRPC_PORT,default=8081"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	JwtSecret         string        `env:"JWT_SECRET,required=true"`
	BufferSize        int           `env:"BUFFER_SIZE,default=1024"`
	LimitChanges      *int          `env:"LIMIT_CHANGES"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT,default=2s"`
	PingInterval      time.Duration `env:"PING_INTERVAL,default=30s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=1m"`
	CharReplacement   string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	EnableModeration  bool          `env:"ENABLE_MODERATION,default=true"`
	EnableInspect     bool          `env:"ENABLE_INSPECT,default=false"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
