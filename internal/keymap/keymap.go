package keymap

import (
	"fmt"
	"sort"

	"github.com/mmed-hajnasr/do-me/internal/action"
)

// Binding ties one key sequence to an action within a mode.
type Binding struct {
	Mode     Mode
	Sequence Sequence
	Action   action.Action
}

// Keymap holds the bindings of every mode.
type Keymap struct {
	modes map[Mode]map[string]Binding
}

func New() *Keymap {
	return &Keymap{modes: map[Mode]map[string]Binding{}}
}

// Bind maps seq to a in mode, replacing any previous binding of seq.
func (k *Keymap) Bind(mode Mode, seq Sequence, a action.Action) {
	if k.modes[mode] == nil {
		k.modes[mode] = map[string]Binding{}
	}
	k.modes[mode][seq.id()] = Binding{Mode: mode, Sequence: append(Sequence(nil), seq...), Action: a}
}

func (k *Keymap) Unbind(mode Mode, seq Sequence) {
	delete(k.modes[mode], seq.id())
}

// BindString parses seq and action names, as found in config files.
func (k *Keymap) BindString(mode Mode, seq, actionName string) error {
	s, err := ParseSequence(seq)
	if err != nil {
		return err
	}
	if actionName == "" || actionName == "none" {
		k.Unbind(mode, s)
		return nil
	}
	a, err := action.Parse(actionName)
	if err != nil {
		return fmt.Errorf("%s %q: %w", mode, seq, err)
	}
	k.Bind(mode, s, a)
	return nil
}

// Lookup returns the action bound to exactly seq in mode.
func (k *Keymap) Lookup(mode Mode, seq Sequence) (action.Action, bool) {
	b, ok := k.modes[mode][seq.id()]
	if !ok {
		return nil, false
	}
	return b.Action, true
}

// IsPrefix reports whether some longer binding in mode starts with seq.
func (k *Keymap) IsPrefix(mode Mode, seq Sequence) bool {
	for _, b := range k.modes[mode] {
		if len(b.Sequence) > len(seq) && b.Sequence.hasPrefix(seq) {
			return true
		}
	}
	return false
}

// Bindings returns the bindings of mode sorted by sequence.
func (k *Keymap) Bindings(mode Mode) []Binding {
	out := make([]Binding, 0, len(k.modes[mode]))
	for _, b := range k.modes[mode] {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Sequence.String() < out[j].Sequence.String()
	})
	return out
}

// Default returns the built-in bindings.
func Default() *Keymap {
	k := New()
	must := func(mode Mode, seq, name string) {
		if err := k.BindString(mode, seq, name); err != nil {
			panic(err)
		}
	}

	must(Global, "ctrl+c", "Quit")
	must(Global, "q", "Quit")
	must(Global, "ctrl+z", "Suspend")
	must(Global, "ctrl+l", "ClearScreen")
	must(Global, "?", "Help")

	for _, mode := range []Mode{Navigation, Menu} {
		must(mode, "k", "GoUp")
		must(mode, "up", "GoUp")
		must(mode, "j", "GoDown")
		must(mode, "down", "GoDown")
		must(mode, "g g", "GoToTop")
		must(mode, "home", "GoToTop")
		must(mode, "G", "GoToBottom")
		must(mode, "end", "GoToBottom")
	}

	must(Navigation, "o", "AddItemAfter")
	must(Navigation, "O", "AddItemBefore")
	must(Navigation, "d d", "DeleteItem")
	must(Navigation, "i", "EditItem")
	must(Navigation, "c w", "EditItem")
	must(Navigation, "e", "EditDescription")
	must(Navigation, "space", "ToggleCompletion")
	must(Navigation, "x", "ToggleCompletion")
	must(Navigation, "+", "IncreasePriority")
	must(Navigation, "-", "DecreasePriority")
	must(Navigation, "K", "MoveItemUp")
	must(Navigation, "J", "MoveItemDown")
	must(Navigation, "m t", "MoveItemTop")
	must(Navigation, "m b", "MoveItemBottom")
	must(Navigation, "l", "FocusOnTasks")
	must(Navigation, "right", "FocusOnTasks")
	must(Navigation, "enter", "FocusOnTasks")
	must(Navigation, "h", "FocusOnWorkspaces")
	must(Navigation, "left", "FocusOnWorkspaces")
	must(Navigation, "s", "OpenSortMenu")

	must(Menu, "enter", "Select")
	must(Menu, "esc", "Cancel")
	must(Menu, "r", "ToggleSortDirection")
	must(Menu, "tab", "ToggleSortDirection")

	return k
}
