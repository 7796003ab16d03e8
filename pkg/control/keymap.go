package control

import (
	"fmt"
	"slices"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// KeyMap binds key names, as understood by uv.KeyPressEvent.MatchString,
// to commands.
type KeyMap map[string]Command

// DefaultKeyMap returns the standard bindings:
//
//	W/S         - Move forward/back
//	A/D         - Move left/right
//	Up/Down     - Rise/fall
//	Q/E         - Zoom in/out
//	Space       - Reset zoom
//	I/K         - Look up/down
//	J/L         - Look left/right
//	U/O         - Tilt left/right
//	Esc         - Quit
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w":      MoveForward,
		"s":      MoveBack,
		"a":      MoveLeft,
		"d":      MoveRight,
		"up":     MoveUp,
		"down":   MoveDown,
		"q":      ZoomIn,
		"e":      ZoomOut,
		"space":  ZoomReset,
		"i":      LookUp,
		"k":      LookDown,
		"j":      LookLeft,
		"l":      LookRight,
		"u":      TiltLeft,
		"o":      TiltRight,
		"escape": Quit,
		"ctrl+c": Quit,
	}
}

// Lookup returns the command bound to key.
func (km KeyMap) Lookup(key string) (Command, bool) {
	c, ok := km[strings.ToLower(key)]
	return c, ok
}

// Match returns the command bound to a key press.
func (km KeyMap) Match(ev uv.KeyPressEvent) (Command, bool) {
	for _, key := range km.Keys() {
		if ev.MatchString(key) {
			return km[key], true
		}
	}
	return None, false
}

// Keys returns the bound key names in sorted order.
func (km KeyMap) Keys() []string {
	keys := make([]string, 0, len(km))
	for k := range km {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Bind returns a copy of km with each command in bindings rebound to the
// given keys. Existing bindings for those keys are replaced, and the
// command's previous keys are removed.
func (km KeyMap) Bind(bindings map[string][]string) (KeyMap, error) {
	out := make(KeyMap, len(km))
	for k, c := range km {
		out[k] = c
	}
	for name, keys := range bindings {
		cmd, err := ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("bind keys: %w", err)
		}
		for k, c := range out {
			if c == cmd {
				delete(out, k)
			}
		}
		for _, k := range keys {
			out[strings.ToLower(k)] = cmd
		}
	}
	return out, nil
}
