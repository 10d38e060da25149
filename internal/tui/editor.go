package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editKind int

const (
	editNone editKind = iota
	// editInsert types the name of a new item that will land at order pos.
	editInsert
	// editRename replaces the name of the item targetID.
	editRename
	// editDescription replaces the description of the item targetID.
	editDescription
)

// editor is the single-line text field used while in insert mode.
type editor struct {
	kind editKind
	// pos is the persisted order a new item is inserted at.
	pos int
	// row is the display row the field is drawn at.
	row int
	// prev is the list row selected before an insert opened its draft row.
	prev     int
	targetID string
	input    textinput.Model
}

func newEditor() editor {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 512
	// Blink messages are not routed through the dispatcher.
	in.Cursor.SetMode(cursor.CursorStatic)
	return editor{input: in}
}

func (e *editor) active() bool { return e.kind != editNone }

func (e *editor) start(kind editKind, pos, row int, targetID, value string) {
	e.kind = kind
	e.pos = pos
	e.row = row
	e.targetID = targetID
	e.input.SetValue(value)
	e.input.CursorEnd()
	e.input.Focus()
}

func (e *editor) stop() {
	e.kind = editNone
	e.pos = 0
	e.row = 0
	e.prev = 0
	e.targetID = ""
	e.input.Reset()
	e.input.Blur()
}

func (e *editor) value() string { return strings.TrimSpace(e.input.Value()) }

type editResult int

const (
	editContinue editResult = iota
	editSubmit
	editCancel
)

// key feeds one raw key press to the field.
func (e *editor) key(msg tea.KeyMsg) editResult {
	switch msg.Type {
	case tea.KeyEnter:
		return editSubmit
	case tea.KeyEsc, tea.KeyCtrlC:
		return editCancel
	}
	e.input, _ = e.input.Update(msg)
	return editContinue
}

func (e *editor) view(width int) string {
	if width > 1 {
		e.input.Width = width - 1
	}
	return e.input.View()
}

// field renders the input as a list row.
func (e *editor) field(th theme, width int) string {
	return th.input.Render("> ") + e.view(width-2)
}
