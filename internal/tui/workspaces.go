package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/model"
	"github.com/mmed-hajnasr/do-me/internal/selection"
)

// workspaceScope is the selection scope key of the workspace list. Workspace ids are
// prefixed "ws-", so it never collides with a task scope.
const workspaceScope = "workspaces"

type workspaceItem struct{ model.Workspace }

func (it workspaceItem) FilterValue() string { return it.Name }

// workspacesComponent is the left pane: the list of workspaces. The row under the
// cursor is the selected workspace whose tasks the right pane shows.
type workspacesComponent struct {
	dispatch.Base

	th      theme
	items   []model.Workspace
	sorter  model.WorkspaceSorter
	list    list.Model
	tracker *selection.Tracker

	selectedID string
	// restoreID is selected on the first load, when still present.
	restoreID string

	focused bool
	edit    editor
	flash   highlight
}

func newWorkspacesComponent(th theme) *workspacesComponent {
	c := &workspacesComponent{
		th:      th,
		tracker: selection.New(),
		edit:    newEditor(),
	}
	c.list = newPaneList(workspaceDelegate{c: c})
	return c
}

func (c *workspacesComponent) Init() error {
	c.Send(action.RequestWorkspacesData{})
	return nil
}

func (c *workspacesComponent) Focus(f bool) { c.focused = f }

func (c *workspacesComponent) current() (model.Workspace, bool) {
	it, ok := c.list.SelectedItem().(workspaceItem)
	return it.Workspace, ok
}

func (c *workspacesComponent) orders() []int {
	out := make([]int, len(c.items))
	for i, w := range c.items {
		out[i] = w.Order
	}
	return out
}

func (c *workspacesComponent) setItems() {
	rows := make([]list.Item, len(c.items))
	for i, w := range c.items {
		rows[i] = workspaceItem{w}
	}
	c.list.SetItems(rows)
}

func (c *workspacesComponent) selectByID(id string) {
	for i, it := range c.list.Items() {
		if w, ok := it.(workspaceItem); ok && w.ID == id {
			c.list.Select(i)
			return
		}
	}
}

// syncSelection announces the workspace under the cursor when it changed. A selected
// workspace that vanished from the list is unselected first.
func (c *workspacesComponent) syncSelection() {
	if c.selectedID != "" && !c.contains(c.selectedID) {
		c.selectedID = ""
		c.Send(action.UnselectWorkspace{})
	}
	w, ok := c.current()
	switch {
	case !ok && c.selectedID != "":
		c.selectedID = ""
		c.Send(action.UnselectWorkspace{})
	case ok && w.ID != c.selectedID:
		c.selectedID = w.ID
		c.Send(action.SelectWorkspace{ID: w.ID})
	}
}

func (c *workspacesComponent) contains(id string) bool {
	for _, w := range c.items {
		if w.ID == id {
			return true
		}
	}
	return false
}

func (c *workspacesComponent) navigated() {
	c.tracker.Remember(workspaceScope, c.list.Index())
	c.syncSelection()
}

func (c *workspacesComponent) startEdit(kind editKind, pos, row int, id, value string) {
	c.edit.start(kind, pos, row, id, value)
	if kind == editInsert {
		c.edit.prev = startDraft(&c.list, row)
	}
	c.Send(action.EnterInsertMode{})
}

func (c *workspacesComponent) stopEdit() {
	if c.edit.kind == editInsert {
		endDraft(&c.list, c.edit.prev)
	}
	c.edit.stop()
}

func (c *workspacesComponent) Update(_ context.Context, a action.Action) error {
	n := len(c.items)
	switch a := a.(type) {
	case action.NewWorkspacesData:
		c.items = append([]model.Workspace(nil), a.Workspaces...)
		c.sorter.Sort(c.items)
		if c.restoreID != "" {
			for _, w := range c.items {
				if w.ID == c.restoreID && !c.tracker.HasHint(workspaceScope) {
					c.tracker.Hint(workspaceScope, selection.AtOrder(w.Order))
				}
			}
			c.restoreID = ""
		}
		c.setItems()
		idx, ok := c.tracker.Resolve(workspaceScope, c.orders())
		selectRow(&c.list, idx, ok)
		c.syncSelection()

	case action.GoUp, action.GoDown, action.GoToTop, action.GoToBottom:
		navigate(&c.list, a)
		c.navigated()

	case action.AddItemAfter:
		pos, row := n, n
		if w, ok := c.current(); ok {
			pos, row = w.Order+1, c.list.Index()+1
		}
		c.startEdit(editInsert, pos, row, "", "")
	case action.AddItemBefore:
		pos, row := 0, 0
		if w, ok := c.current(); ok {
			pos, row = w.Order, c.list.Index()
		}
		c.startEdit(editInsert, pos, row, "", "")
	case action.EditItem:
		if w, ok := c.current(); ok {
			c.startEdit(editRename, w.Order, c.list.Index(), w.ID, w.Name)
		}
	case action.DeleteItem:
		if w, ok := c.current(); ok {
			c.tracker.Hint(workspaceScope, selection.AtIndex(c.list.Index()))
			c.Send(action.RemoveWorkspace{ID: w.ID})
		}

	case action.MoveItemUp:
		if w, ok := c.current(); ok && w.Order > 0 {
			c.move(w, w.Order-1)
		}
	case action.MoveItemDown:
		if w, ok := c.current(); ok && w.Order < n-1 {
			c.move(w, w.Order+1)
		}
	case action.MoveItemTop:
		if w, ok := c.current(); ok && w.Order != 0 {
			c.move(w, 0)
		}
	case action.MoveItemBottom:
		if w, ok := c.current(); ok && w.Order != n-1 {
			c.move(w, n-1)
		}

	case action.SendKey:
		c.handleKey(a)

	case action.HighlightWorkspace:
		c.flash.set(a.Name)
		for _, w := range c.items {
			if w.Name == a.Name {
				c.tracker.Hint(workspaceScope, selection.AtOrder(w.Order))
			}
		}
	case action.Tick:
		c.flash.tick()

	case action.SortWorkspaces:
		c.sorter = a.Sorter
		c.sorter.Sort(c.items)
		c.setItems()
		c.selectByID(c.selectedID)
		c.tracker.Remember(workspaceScope, c.list.Index())
	}
	return nil
}

func (c *workspacesComponent) move(w model.Workspace, to int) {
	c.tracker.Hint(workspaceScope, selection.AtOrder(to))
	c.Send(action.UpdateWorkspace{Workspace: model.UpdateWorkspace{ID: w.ID, Order: model.Ptr(to)}})
}

func (c *workspacesComponent) handleKey(a action.SendKey) {
	if !c.edit.active() {
		return
	}
	switch c.edit.key(a.Key) {
	case editContinue:
		return
	case editSubmit:
		name := c.edit.value()
		if name != "" {
			switch c.edit.kind {
			case editInsert:
				c.tracker.Hint(workspaceScope, selection.AtOrder(c.edit.pos))
				c.Send(action.AddWorkspace{Workspace: model.AddWorkspace{Name: name, Order: model.Ptr(c.edit.pos)}})
			case editRename:
				c.tracker.Hint(workspaceScope, selection.AtOrder(c.edit.pos))
				c.Send(action.UpdateWorkspace{Workspace: model.UpdateWorkspace{ID: c.edit.targetID, Name: model.Ptr(name)}})
			}
		}
	}
	c.stopEdit()
	c.Send(action.LeaveInsertMode{})
}

func (c *workspacesComponent) View(width, height int) string {
	title := "Workspaces"
	if c.sorter != (model.WorkspaceSorter{}) {
		title = fmt.Sprintf("Workspaces (%s)", c.sorter)
	}
	if len(c.items) == 0 && !c.edit.active() {
		return renderPane(c.th, title, c.focused, c.th.muted.Render("no workspaces, press o to add one"), width, height)
	}
	c.list.SetSize(width-2, max(height-3, 1))
	return renderPane(c.th, title, c.focused, c.list.View(), width, height)
}

// workspaceDelegate draws workspace rows. The rename field replaces its row and the
// draft row holds the insert field.
type workspaceDelegate struct{ c *workspacesComponent }

func (workspaceDelegate) Height() int                             { return 1 }
func (workspaceDelegate) Spacing() int                            { return 0 }
func (workspaceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d workspaceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, width := d.c, m.Width()
	switch it := item.(type) {
	case draftItem:
		fmt.Fprint(w, c.edit.field(c.th, width))
	case workspaceItem:
		if c.edit.kind == editRename && c.edit.targetID == it.ID {
			fmt.Fprint(w, c.edit.field(c.th, width))
			return
		}
		st, _ := rowStyle(c.th, c.flash.matches(it.Name), index == m.Index(), c.focused)
		fmt.Fprint(w, st.Render(fitLine(" "+it.Name, width)))
	}
}
