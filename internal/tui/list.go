package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmed-hajnasr/do-me/internal/action"
)

// highlightTicks is how long a conflicting row stays flagged.
const highlightTicks = 9

// newPaneList returns a list.Model with its own chrome and key handling off: panes
// draw their frame, and navigation arrives as actions.
func newPaneList(d list.ItemDelegate) list.Model {
	l := list.New(nil, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.InfiniteScrolling = true
	return l
}

// draftItem holds the place of a row being typed in insert mode.
type draftItem struct{}

func (draftItem) FilterValue() string { return "" }

// navigate applies a cursor action to l. It reports whether a was one.
func navigate(l *list.Model, a action.Action) bool {
	n := len(l.Items())
	switch a.(type) {
	case action.GoUp:
		if n > 0 {
			l.CursorUp()
		}
	case action.GoDown:
		if n > 0 {
			l.CursorDown()
		}
	case action.GoToTop:
		l.Select(0)
	case action.GoToBottom:
		l.Select(max(0, n-1))
	default:
		return false
	}
	return true
}

// selectRow selects the resolved row, or the top when the list is empty.
func selectRow(l *list.Model, i int, ok bool) {
	if !ok || i < 0 {
		i = 0
	}
	l.Select(i)
}

// startDraft inserts a draft row at row and selects it. It returns the row that
// was selected before.
func startDraft(l *list.Model, row int) int {
	prev := l.Index()
	row = min(max(row, 0), len(l.Items()))
	l.InsertItem(row, draftItem{})
	l.Select(row)
	return prev
}

// endDraft removes the draft row, if any, and selects prev again.
func endDraft(l *list.Model, prev int) {
	for i, it := range l.Items() {
		if _, ok := it.(draftItem); ok {
			l.RemoveItem(i)
			l.Select(min(max(prev, 0), max(len(l.Items())-1, 0)))
			return
		}
	}
}

// highlight flags a row by name for a few ticks.
type highlight struct {
	name  string
	ticks int
}

func (h *highlight) set(name string) {
	h.name = name
	h.ticks = highlightTicks
}

func (h *highlight) tick() {
	if h.ticks == 0 {
		return
	}
	h.ticks--
	if h.ticks == 0 {
		h.name = ""
	}
}

func (h highlight) matches(name string) bool {
	return h.ticks > 0 && h.name == name
}

// rowStyle picks the style of a list row. A conflict flash wins over selection.
func rowStyle(th theme, flashed, selected, focused bool) (style lipgloss.Style, plain bool) {
	switch {
	case flashed:
		return th.conflict, false
	case selected && focused:
		return th.selected, false
	case selected:
		return th.selectedBlurred, false
	}
	return th.row, true
}

// renderPane draws a bordered pane of exactly width x height with a title line.
func renderPane(th theme, title string, focused bool, body string, width, height int) string {
	if width < 4 || height < 3 {
		return normalizePane("", width, height)
	}
	titleStyle, border := th.title, th.paneBorder
	if focused {
		titleStyle, border = th.titleFocused, th.paneBorderFocused
	}
	innerW, innerH := width-2, height-2
	content := titleStyle.Render(truncate(title, innerW))
	if body != "" {
		content += "\n" + body
	}
	return border.Render(normalizePane(content, innerW, innerH))
}
