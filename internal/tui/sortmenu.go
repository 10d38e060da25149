package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/model"
)

// sortMenu is the popup that picks the sort key and direction of one list.
// It only draws while focused.
type sortMenu struct {
	dispatch.Base

	th     theme
	target action.ComponentID
	cursor int
	desc   bool

	// Current sorters, so reopening the menu starts from the active choice.
	tasks      model.TaskSorter
	workspaces model.WorkspaceSorter

	focused bool
}

func newSortMenu(th theme) *sortMenu {
	return &sortMenu{th: th}
}

func (m *sortMenu) Focus(f bool) {
	m.focused = f
	if !f {
		m.target = action.None
		m.cursor = 0
		m.desc = false
	}
}

func (m *sortMenu) labels() []string {
	var out []string
	switch m.target {
	case action.Tasks:
		for _, k := range model.TaskSortKeys {
			out = append(out, k.Label())
		}
	case action.Workspaces:
		for _, k := range model.WorkspaceSortKeys {
			out = append(out, k.Label())
		}
	}
	return out
}

func (m *sortMenu) Update(_ context.Context, a action.Action) error {
	n := len(m.labels())
	switch a := a.(type) {
	case action.SetupSortMenu:
		m.target = a.Target
		m.cursor = 0
		switch a.Target {
		case action.Tasks:
			m.desc = m.tasks.Desc
			for i, k := range model.TaskSortKeys {
				if k == m.tasks.Key {
					m.cursor = i
				}
			}
		case action.Workspaces:
			m.desc = m.workspaces.Desc
			for i, k := range model.WorkspaceSortKeys {
				if k == m.workspaces.Key {
					m.cursor = i
				}
			}
		}
	case action.GoUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case action.GoDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case action.GoToTop:
		m.cursor = 0
	case action.GoToBottom:
		if n > 0 {
			m.cursor = n - 1
		}
	case action.ToggleSortDirection:
		m.desc = !m.desc
	case action.Select:
		target := m.target
		switch target {
		case action.Tasks:
			m.tasks = model.TaskSorter{Key: model.TaskSortKeys[m.cursor], Desc: m.desc}
			m.Send(action.SortTasks{Sorter: m.tasks})
		case action.Workspaces:
			m.workspaces = model.WorkspaceSorter{Key: model.WorkspaceSortKeys[m.cursor], Desc: m.desc}
			m.Send(action.SortWorkspaces{Sorter: m.workspaces})
		}
		m.Send(action.ExitSortMenu{Return: target})
	case action.Cancel:
		m.Send(action.ExitSortMenu{Return: m.target})
	}
	return nil
}

func (m *sortMenu) View(width, height int) string {
	if !m.focused || m.target == action.None {
		return ""
	}
	var b strings.Builder
	what := "tasks"
	if m.target == action.Workspaces {
		what = "workspaces"
	}
	b.WriteString(m.th.titleFocused.Render("Sort " + what + " by"))
	for i, label := range m.labels() {
		b.WriteString("\n")
		line := "  " + label
		if i == m.cursor {
			b.WriteString(m.th.selected.Render("> " + label))
			continue
		}
		b.WriteString(m.th.row.Render(line))
	}
	dir := "ascending"
	if m.desc {
		dir = "descending"
	}
	b.WriteString("\n\n" + m.th.muted.Render("direction: "+dir))
	return m.th.popup.Render(lipgloss.NewStyle().MaxWidth(width - 4).Render(b.String()))
}
