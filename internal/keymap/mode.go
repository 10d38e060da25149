package keymap

import (
	"fmt"
	"strings"
)

// Mode selects which local keymap applies. Global bindings are consulted first in
// every mode except Insert, where keys bypass the keymap entirely.
type Mode int

const (
	Global Mode = iota
	Navigation
	Menu
	Insert
)

// Modes lists every mode that can carry bindings.
var Modes = []Mode{Global, Navigation, Menu}

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Navigation:
		return "navigation"
	case Menu:
		return "menu"
	case Insert:
		return "insert"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return Global, nil
	case "navigation", "normal":
		return Navigation, nil
	case "menu", "sort-menu":
		return Menu, nil
	case "insert":
		return Insert, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}
