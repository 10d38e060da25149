package keymap

import (
	"fmt"
	"strings"
)

// Sequence is an ordered chord of keys in tea.KeyMsg.String() form ("g", "ctrl+c", " ").
type Sequence []string

// keyAliases maps config spellings to the form bubbletea reports.
var keyAliases = map[string]string{
	"space":     " ",
	"spc":       " ",
	"return":    "enter",
	"escape":    "esc",
	"del":       "delete",
	"bs":        "backspace",
	"pgup":      "pgup",
	"pageup":    "pgup",
	"pgdown":    "pgdown",
	"pagedown":  "pgdown",
	"shift-tab": "shift+tab",
}

// ParseSequence parses a whitespace separated chord such as "g g" or "ctrl+x k".
func ParseSequence(s string) (Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && strings.TrimSpace(s) == "" {
			// A literal space binding.
			return Sequence{" "}, nil
		}
		return nil, fmt.Errorf("empty key sequence")
	}
	out := make(Sequence, 0, len(fields))
	for _, f := range fields {
		out = append(out, normalizeKey(f))
	}
	return out, nil
}

func normalizeKey(k string) string {
	if len(k) == 1 {
		return k
	}
	lk := strings.ToLower(k)
	if a, ok := keyAliases[lk]; ok {
		return a
	}
	// Modifiers are spelled lower case by bubbletea ("ctrl+c", "alt+enter").
	if i := strings.LastIndex(lk, "+"); i > 0 && i < len(k)-1 {
		mods, key := lk[:i], k[i+1:]
		if len(key) != 1 || strings.Contains(mods, "ctrl") {
			key = strings.ToLower(key)
		}
		return mods + "+" + key
	}
	return lk
}

// String renders the sequence the way it is written in config.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		if k == " " {
			k = "space"
		}
		parts[i] = k
	}
	return strings.Join(parts, " ")
}

// id is the map key of a sequence. Keys may contain spaces, so join on a control char.
func (s Sequence) id() string {
	return strings.Join(s, "\x1f")
}

func (s Sequence) hasPrefix(p Sequence) bool {
	if len(p) > len(s) {
		return false
	}
	for i := range p {
		if s[i] != p[i] {
			return false
		}
	}
	return true
}
