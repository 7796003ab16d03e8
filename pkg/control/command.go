// Package control maps user input to camera motion.
//
// Input handlers only produce Command values. A Rig owned by the frame
// loop applies them to the camera between frames, so the camera has a
// single writer.
package control

import (
	"fmt"
	"strings"
)

// Command is one discrete camera action.
type Command int

const (
	None Command = iota
	MoveForward
	MoveBack
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ZoomIn
	ZoomOut
	ZoomReset
	LookUp
	LookDown
	LookLeft
	LookRight
	TiltLeft
	TiltRight
	Quit
)

var commandNames = [...]string{
	None:        "none",
	MoveForward: "move_forward",
	MoveBack:    "move_back",
	MoveLeft:    "move_left",
	MoveRight:   "move_right",
	MoveUp:      "move_up",
	MoveDown:    "move_down",
	ZoomIn:      "zoom_in",
	ZoomOut:     "zoom_out",
	ZoomReset:   "zoom_reset",
	LookUp:      "look_up",
	LookDown:    "look_down",
	LookLeft:    "look_left",
	LookRight:   "look_right",
	TiltLeft:    "tilt_left",
	TiltRight:   "tilt_right",
	Quit:        "quit",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand parses a command name as returned by String.
func ParseCommand(s string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range commandNames {
		if n == name && Command(c) != None {
			return Command(c), nil
		}
	}
	return None, fmt.Errorf("unknown command %q", s)
}
