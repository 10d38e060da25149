package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
)

// errorTicks is how long an error message stays in the status bar.
const errorTicks = 16

// helpKeys adapts the keymap of one mode to help.KeyMap.
type helpKeys struct {
	km   *keymap.Keymap
	mode keymap.Mode
}

func (h helpKeys) ShortHelp() []key.Binding { return h.km.ShortHelpBindings(h.mode) }

func (h helpKeys) FullHelp() [][]key.Binding {
	all := h.km.HelpBindings(h.mode)
	const perColumn = 6
	var cols [][]key.Binding
	for len(all) > 0 {
		n := perColumn
		if n > len(all) {
			n = len(all)
		}
		cols = append(cols, all[:n])
		all = all[n:]
	}
	return cols
}

// statusBar is the bottom line: the mode, pending keys, the last error and key help.
type statusBar struct {
	dispatch.Base

	th   theme
	km   *keymap.Keymap
	help help.Model

	insert bool
	menu   bool

	errMsg   string
	errTicks int

	// pending is set by the app before each render.
	pending keymap.Sequence
}

func newStatusBar(th theme, km *keymap.Keymap) *statusBar {
	h := help.New()
	h.ShortSeparator = " · "
	return &statusBar{th: th, km: km, help: h}
}

func (s *statusBar) mode() keymap.Mode {
	switch {
	case s.insert:
		return keymap.Insert
	case s.menu:
		return keymap.Menu
	default:
		return keymap.Navigation
	}
}

func (s *statusBar) Update(_ context.Context, a action.Action) error {
	switch a := a.(type) {
	case action.EnterInsertMode:
		s.insert = true
	case action.LeaveInsertMode:
		s.insert = false
	case action.OpenSortMenu:
		s.menu = true
	case action.ExitSortMenu:
		s.menu = false
	case action.Help:
		s.help.ShowAll = !s.help.ShowAll
	case action.Error:
		s.errMsg = a.Message
		s.errTicks = errorTicks
	case action.Tick:
		if s.errTicks > 0 {
			s.errTicks--
			if s.errTicks == 0 {
				s.errMsg = ""
			}
		}
	}
	return nil
}

func (s *statusBar) View(width, _ int) string {
	if width <= 0 {
		return ""
	}
	s.help.Width = width

	var lines []string
	left := s.th.titleFocused.Render(strings.ToUpper(s.mode().String()))
	if len(s.pending) > 0 {
		left += " " + s.th.input.Render(s.pending.String())
	}
	if s.insert {
		left += " " + s.th.muted.Render("enter to save, esc to cancel")
	}
	lines = append(lines, fitLine(left, width))

	if s.errMsg != "" {
		for _, ln := range strings.Split(wordwrap.String(s.errMsg, width), "\n") {
			lines = append(lines, fitLine(s.th.statusError.Render(ln), width))
		}
	}
	if !s.insert {
		lines = append(lines, s.help.View(helpKeys{km: s.km, mode: s.mode()}))
	}
	return strings.Join(lines, "\n")
}
