package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/model"
	"github.com/mmed-hajnasr/do-me/internal/selection"
)

type taskItem struct{ model.Task }

func (it taskItem) FilterValue() string { return it.Name }

// tasksComponent is the right pane: the tasks of the selected workspace and a
// preview of the selected task's description.
type tasksComponent struct {
	dispatch.Base

	th     theme
	sorter model.TaskSorter
	list   list.Model
	// tracker scopes are workspace ids.
	tracker *selection.Tracker

	workspaceID string
	items       []model.Task

	focused bool
	edit    editor
	flash   highlight
	md      *descriptionPreview
}

func newTasksComponent(th theme) *tasksComponent {
	c := &tasksComponent{
		th:      th,
		tracker: selection.New(),
		edit:    newEditor(),
		md:      newDescriptionPreview(),
	}
	c.list = newPaneList(taskDelegate{c: c})
	return c
}

func (c *tasksComponent) Focus(f bool) { c.focused = f }

func (c *tasksComponent) current() (model.Task, bool) {
	it, ok := c.list.SelectedItem().(taskItem)
	return it.Task, ok
}

func (c *tasksComponent) orders() []int {
	out := make([]int, len(c.items))
	for i, t := range c.items {
		out[i] = t.Order
	}
	return out
}

func (c *tasksComponent) setItems() {
	rows := make([]list.Item, len(c.items))
	for i, t := range c.items {
		rows[i] = taskItem{t}
	}
	c.list.SetItems(rows)
}

func (c *tasksComponent) hint(h selection.Hint) {
	if c.workspaceID != "" {
		c.tracker.Hint(c.workspaceID, h)
	}
}

func (c *tasksComponent) navigated() {
	if c.workspaceID != "" {
		c.tracker.Remember(c.workspaceID, c.list.Index())
	}
}

func (c *tasksComponent) clear() {
	if c.edit.active() {
		c.stopEdit()
	}
	c.items = nil
	c.setItems()
	c.list.Select(0)
}

func (c *tasksComponent) startEdit(kind editKind, pos, row int, id, value string) {
	c.edit.start(kind, pos, row, id, value)
	if kind == editInsert {
		c.edit.prev = startDraft(&c.list, row)
	}
	c.Send(action.EnterInsertMode{})
}

func (c *tasksComponent) stopEdit() {
	if c.edit.kind == editInsert {
		endDraft(&c.list, c.edit.prev)
	}
	c.edit.stop()
}

func (c *tasksComponent) Update(_ context.Context, a action.Action) error {
	n := len(c.items)
	switch a := a.(type) {
	case action.SelectWorkspace:
		if a.ID == c.workspaceID {
			return nil
		}
		c.workspaceID = a.ID
		c.clear()
		c.Send(action.RequestTasksData{WorkspaceID: a.ID})
	case action.UnselectWorkspace:
		// Only sent when the selected workspace is gone.
		if c.workspaceID != "" {
			c.tracker.Forget(c.workspaceID)
		}
		c.workspaceID = ""
		c.clear()

	case action.NewTasksData:
		if a.WorkspaceID != c.workspaceID {
			return nil
		}
		c.items = append([]model.Task(nil), a.Tasks...)
		c.sorter.Sort(c.items)
		c.setItems()
		idx, ok := c.tracker.Resolve(c.workspaceID, c.orders())
		selectRow(&c.list, idx, ok)

	case action.GoUp, action.GoDown, action.GoToTop, action.GoToBottom:
		navigate(&c.list, a)
		c.navigated()

	case action.AddItemAfter, action.AddItemBefore:
		if c.workspaceID == "" {
			c.Send(action.Error{Message: "no workspace selected"})
			return nil
		}
		pos, row := c.insertPosition(a)
		c.startEdit(editInsert, pos, row, "", "")
	case action.EditItem:
		if t, ok := c.current(); ok {
			c.startEdit(editRename, t.Order, c.list.Index(), t.ID, t.Name)
		}
	case action.EditDescription:
		if t, ok := c.current(); ok {
			c.startEdit(editDescription, t.Order, c.list.Index(), t.ID, t.Description)
		}
	case action.DeleteItem:
		if t, ok := c.current(); ok {
			c.hint(selection.AtIndex(c.list.Index()))
			c.Send(action.RemoveTask{ID: t.ID})
		}

	case action.ToggleCompletion:
		if t, ok := c.current(); ok {
			c.update(t, model.UpdateTask{ID: t.ID, Completed: model.Ptr(!t.Completed)})
		}
	case action.IncreasePriority:
		if t, ok := c.current(); ok && t.Priority > model.MinPriority {
			c.update(t, model.UpdateTask{ID: t.ID, Priority: model.Ptr(model.ClampPriority(t.Priority - 1))})
		}
	case action.DecreasePriority:
		if t, ok := c.current(); ok && t.Priority < model.MaxPriority {
			c.update(t, model.UpdateTask{ID: t.ID, Priority: model.Ptr(model.ClampPriority(t.Priority + 1))})
		}

	case action.MoveItemUp:
		if t, ok := c.current(); ok && t.Order > 0 {
			c.move(t, t.Order-1)
		}
	case action.MoveItemDown:
		if t, ok := c.current(); ok && t.Order < n-1 {
			c.move(t, t.Order+1)
		}
	case action.MoveItemTop:
		if t, ok := c.current(); ok && t.Order != 0 {
			c.move(t, 0)
		}
	case action.MoveItemBottom:
		if t, ok := c.current(); ok && t.Order != n-1 {
			c.move(t, n-1)
		}

	case action.SendKey:
		c.handleKey(a)

	case action.HighlightTask:
		c.flash.set(a.Name)
		for _, t := range c.items {
			if t.Name == a.Name {
				c.hint(selection.AtOrder(t.Order))
			}
		}
	case action.Tick:
		c.flash.tick()

	case action.SortTasks:
		c.sorter = a.Sorter
		selected, ok := c.current()
		c.sorter.Sort(c.items)
		c.setItems()
		if ok {
			c.selectByID(selected.ID)
			c.navigated()
		}
	}
	return nil
}

func (c *tasksComponent) selectByID(id string) {
	for i, it := range c.list.Items() {
		if t, ok := it.(taskItem); ok && t.ID == id {
			c.list.Select(i)
			return
		}
	}
}

// insertPosition returns the persisted order and display row of a new task.
func (c *tasksComponent) insertPosition(a action.Action) (pos, row int) {
	t, ok := c.current()
	_, after := a.(action.AddItemAfter)
	switch {
	case !ok && after:
		return len(c.items), len(c.items)
	case !ok:
		return 0, 0
	case after:
		return t.Order + 1, c.list.Index() + 1
	default:
		return t.Order, c.list.Index()
	}
}

func (c *tasksComponent) update(t model.Task, req model.UpdateTask) {
	c.hint(selection.AtOrder(t.Order))
	c.Send(action.UpdateTask{Task: req})
}

func (c *tasksComponent) move(t model.Task, to int) {
	c.hint(selection.AtOrder(to))
	c.Send(action.UpdateTask{Task: model.UpdateTask{ID: t.ID, Order: model.Ptr(to)}})
}

func (c *tasksComponent) handleKey(a action.SendKey) {
	if !c.edit.active() {
		return
	}
	switch c.edit.key(a.Key) {
	case editContinue:
		return
	case editSubmit:
		c.submit()
	}
	c.stopEdit()
	c.Send(action.LeaveInsertMode{})
}

func (c *tasksComponent) submit() {
	v := c.edit.value()
	switch c.edit.kind {
	case editInsert:
		if v == "" || c.workspaceID == "" {
			return
		}
		c.hint(selection.AtOrder(c.edit.pos))
		c.Send(action.AddTask{Task: model.AddTask{
			WorkspaceID: c.workspaceID,
			Name:        v,
			Order:       model.Ptr(c.edit.pos),
		}})
	case editRename:
		if v == "" {
			return
		}
		c.hint(selection.AtOrder(c.edit.pos))
		c.Send(action.UpdateTask{Task: model.UpdateTask{ID: c.edit.targetID, Name: model.Ptr(v)}})
	case editDescription:
		// An empty description clears it.
		c.hint(selection.AtOrder(c.edit.pos))
		c.Send(action.UpdateTask{Task: model.UpdateTask{ID: c.edit.targetID, Description: model.Ptr(v)}})
	}
}

func (c *tasksComponent) title() string {
	title := "Tasks"
	if len(c.items) > 0 {
		done := 0
		for _, t := range c.items {
			if t.Completed {
				done++
			}
		}
		title = fmt.Sprintf("Tasks %d/%d", done, len(c.items))
	}
	if c.sorter != (model.TaskSorter{}) {
		title += fmt.Sprintf(" (%s)", c.sorter)
	}
	return title
}

func (c *tasksComponent) View(width, height int) string {
	title := c.title()
	if c.workspaceID == "" {
		return renderPane(c.th, title, c.focused, c.th.muted.Render("No workspace selected"), width, height)
	}
	if len(c.items) == 0 && !c.edit.active() {
		return renderPane(c.th, title, c.focused, c.th.muted.Render("no tasks, press o to add one"), width, height)
	}

	innerW, bodyH := width-2, height-3
	preview := c.preview(innerW, bodyH)
	listH := bodyH
	if preview != "" {
		listH -= strings.Count(preview, "\n") + 1
	}
	c.list.SetSize(innerW, max(listH, 1))

	body := c.list.View()
	if preview != "" {
		body = normalizePane(body, innerW, listH) + "\n" + preview
	}
	return renderPane(c.th, title, c.focused, body, width, height)
}

// preview renders the description block under the list, or "" when there is none.
func (c *tasksComponent) preview(width, bodyH int) string {
	maxH := bodyH / 3
	if maxH < 2 {
		return ""
	}
	sep := c.th.muted.Render(strings.Repeat("─", width))
	if c.edit.kind == editDescription {
		return sep + "\n" + c.th.input.Render("description: ") + c.edit.view(width-13)
	}
	t, ok := c.current()
	if !ok || strings.TrimSpace(t.Description) == "" {
		return ""
	}
	lines := strings.Split(c.md.render(t.Description, width), "\n")
	if len(lines) > maxH-1 {
		lines = lines[:maxH-1]
	}
	return sep + "\n" + strings.Join(lines, "\n")
}

// taskDelegate draws task rows: checkbox, name and a priority tag.
type taskDelegate struct{ c *tasksComponent }

func (taskDelegate) Height() int                             { return 1 }
func (taskDelegate) Spacing() int                            { return 0 }
func (taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, width := d.c, m.Width()
	switch it := item.(type) {
	case draftItem:
		fmt.Fprint(w, c.edit.field(c.th, width))
	case taskItem:
		if c.edit.kind == editRename && c.edit.targetID == it.ID {
			fmt.Fprint(w, c.edit.field(c.th, width))
			return
		}
		fmt.Fprint(w, c.renderRow(it.Task, index == m.Index(), width))
	}
}

func (c *tasksComponent) renderRow(t model.Task, selected bool, width int) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	p := model.ClampPriority(t.Priority)
	tag := fmt.Sprintf("P%d", p)
	left := fitLine(fmt.Sprintf(" %s %s", box, t.Name), width-len(tag)-1)
	plain := left + " " + tag
	if xansi.StringWidth(plain) > width {
		plain = fitLine(plain, width)
	}

	st, unstyled := rowStyle(c.th, c.flash.matches(t.Name), selected, c.focused)
	switch {
	case !unstyled:
		return st.Render(plain)
	case t.Completed:
		return c.th.completed.Render(left) + " " + c.th.muted.Render(tag)
	default:
		return c.th.row.Render(left) + " " + c.th.priority[p].Render(tag)
	}
}
