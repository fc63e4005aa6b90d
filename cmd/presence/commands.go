package main

import (
	"collab-lab/domain"
	"fmt"
	"strconv"
	"strings"
)

// command is one stdin line: "/name Alice", "/avatar robot.glb", "/move 1 0 2",
// "/follow bob", "/unfollow", "/who", "/quit".
type command struct {
	name    string
	partial domain.Participant
	follow  *string
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return command{}, fmt.Errorf("commands start with '/', got %q", line)
	}
	cmd := command{name: strings.TrimPrefix(fields[0], "/")}
	args := fields[1:]

	switch cmd.name {
	case "name":
		if len(args) == 0 {
			return command{}, fmt.Errorf("usage: /name <display name>")
		}
		cmd.partial.Name = strings.Join(args, " ")
	case "avatar":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: /avatar <model>")
		}
		cmd.partial.Avatar = &domain.Avatar{Model: args[0]}
		cmd.partial.AvatarConfig = &domain.AvatarConfig{Scale: 1}
	case "move":
		if len(args) != 3 {
			return command{}, fmt.Errorf("usage: /move <x> <y> <z>")
		}
		var coords [3]float64
		for i, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return command{}, fmt.Errorf("invalid coordinate %q: %w", arg, err)
			}
			coords[i] = v
		}
		cmd.partial.Position = &domain.Vector3{X: coords[0], Y: coords[1], Z: coords[2]}
	case "follow":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: /follow <participant>")
		}
		cmd.follow = &args[0]
	case "unfollow":
		empty := ""
		cmd.follow = &empty
	case "who", "quit":
	default:
		return command{}, fmt.Errorf("unknown command /%s", cmd.name)
	}
	return cmd, nil
}

func (c command) updatesLocal() bool {
	return c.name == "name" || c.name == "avatar" || c.name == "move"
}
