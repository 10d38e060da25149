package action

import (
	"fmt"
	"sort"
	"strings"
)

// bindable lists the variants a key can produce. Variants carrying data are created by
// components, never by the keymap.
var bindable = map[string]Action{}

func init() {
	for _, a := range []Action{
		Quit{}, Suspend{}, ClearScreen{}, Help{},
		GoUp{}, GoDown{}, GoToTop{}, GoToBottom{},
		EnterInsertMode{}, LeaveInsertMode{},
		AddItemBefore{}, AddItemAfter{}, DeleteItem{}, EditItem{}, EditDescription{},
		ToggleCompletion{}, IncreasePriority{}, DecreasePriority{},
		MoveItemUp{}, MoveItemDown{}, MoveItemTop{}, MoveItemBottom{},
		FocusOnTasks{}, FocusOnWorkspaces{},
		OpenSortMenu{}, ToggleSortDirection{}, Select{}, Cancel{},
	} {
		bindable[strings.ToLower(Name(a))] = a
	}
}

// Parse resolves a bindable action name ("MoveItemUp", "move-item-up", "move_item_up").
func Parse(name string) (Action, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(name)))
	if a, ok := bindable[key]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

// BindableNames returns the bindable action names, sorted.
func BindableNames() []string {
	out := make([]string, 0, len(bindable))
	for _, a := range bindable {
		out = append(out, Name(a))
	}
	sort.Strings(out)
	return out
}
