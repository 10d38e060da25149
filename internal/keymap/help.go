package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/mmed-hajnasr/do-me/internal/action"
)

var helpText = map[string]string{
	"Quit":                "quit",
	"Suspend":             "suspend",
	"ClearScreen":         "redraw",
	"Help":                "help",
	"GoUp":                "up",
	"GoDown":              "down",
	"GoToTop":             "top",
	"GoToBottom":          "bottom",
	"AddItemAfter":        "add below",
	"AddItemBefore":       "add above",
	"DeleteItem":          "delete",
	"EditItem":            "rename",
	"EditDescription":     "description",
	"ToggleCompletion":    "done",
	"IncreasePriority":    "priority+",
	"DecreasePriority":    "priority-",
	"MoveItemUp":          "move up",
	"MoveItemDown":        "move down",
	"MoveItemTop":         "move top",
	"MoveItemBottom":      "move bottom",
	"FocusOnTasks":        "tasks",
	"FocusOnWorkspaces":   "workspaces",
	"OpenSortMenu":        "sort",
	"Select":              "apply",
	"Cancel":              "cancel",
	"ToggleSortDirection": "asc/desc",
	"EnterInsertMode":     "insert",
	"LeaveInsertMode":     "normal",
}

// short lists the actions shown in the one-line help, in display order.
var short = []string{"AddItemAfter", "EditItem", "DeleteItem", "ToggleCompletion", "OpenSortMenu", "Select", "Cancel", "Help", "Quit"}

// HelpBindings groups the bindings visible in mode by action, as bubbles/key bindings.
func (k *Keymap) HelpBindings(mode Mode) []key.Binding {
	byAction := map[string][]string{}
	var order []string
	add := func(bs []Binding) {
		for _, b := range bs {
			name := action.Name(b.Action)
			if _, ok := byAction[name]; !ok {
				order = append(order, name)
			}
			byAction[name] = append(byAction[name], b.Sequence.String())
		}
	}
	if mode != Global {
		add(k.Bindings(mode))
	}
	add(k.Bindings(Global))

	sort.Strings(order)

	out := make([]key.Binding, 0, len(order))
	for _, name := range order {
		seqs := byAction[name]
		desc := helpText[name]
		if desc == "" {
			desc = strings.ToLower(name)
		}
		out = append(out, key.NewBinding(
			key.WithKeys(seqs...),
			key.WithHelp(strings.Join(seqs, "/"), desc),
		))
	}
	return out
}

// ShortHelpBindings is the subset of HelpBindings shown when help is collapsed.
func (k *Keymap) ShortHelpBindings(mode Mode) []key.Binding {
	all := k.HelpBindings(mode)
	want := map[string]bool{}
	for _, name := range short {
		want[helpText[name]] = true
	}
	out := make([]key.Binding, 0, len(short))
	for _, b := range all {
		if want[b.Help().Desc] {
			out = append(out, b)
		}
	}
	return out
}
