package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	t.Run("name keeps spaces", func(t *testing.T) {
		req := require.New(t)
		cmd, err := parseCommand("/name Alice Liddell")
		req.NoError(err)
		req.True(cmd.updatesLocal())
		req.Equal("Alice Liddell", cmd.partial.Name)
	})

	t.Run("avatar sets a config", func(t *testing.T) {
		req := require.New(t)
		cmd, err := parseCommand("/avatar robot.glb")
		req.NoError(err)
		req.Equal("robot.glb", cmd.partial.AvatarModel())
		req.NotNil(cmd.partial.AvatarConfig)
	})

	t.Run("move", func(t *testing.T) {
		req := require.New(t)
		cmd, err := parseCommand("/move 1 -2.5 3")
		req.NoError(err)
		req.Equal(-2.5, cmd.partial.Position.Y)

		_, err = parseCommand("/move 1 x 3")
		req.Error(err)
	})

	t.Run("follow and unfollow", func(t *testing.T) {
		req := require.New(t)
		cmd, err := parseCommand("/follow bob")
		req.NoError(err)
		req.Equal("bob", *cmd.follow)
		req.False(cmd.updatesLocal())

		cmd, err = parseCommand("/unfollow")
		req.NoError(err)
		req.Equal("", *cmd.follow)
	})

	t.Run("rejected lines", func(t *testing.T) {
		for _, line := range []string{"", "hello", "/dance", "/name", "/avatar"} {
			_, err := parseCommand(line)
			require.Error(t, err, line)
		}
	})
}
