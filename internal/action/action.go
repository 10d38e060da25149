// Package action defines the intents that flow through the dispatcher and where each
// one is delivered.
package action

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

// Action is one intent or event. The set of variants is closed: only types in this
// package implement it.
type Action interface {
	isAction()
}

// Lifecycle.
type (
	Tick        struct{}
	Render      struct{}
	Suspend     struct{}
	Resume      struct{}
	Quit        struct{}
	ClearScreen struct{}
	Help        struct{}
	Resize      struct{ Width, Height int }
	Error       struct{ Message string }
)

// Navigation and modes.
type (
	GoUp            struct{}
	GoDown          struct{}
	GoToTop         struct{}
	GoToBottom      struct{}
	EnterInsertMode struct{}
	LeaveInsertMode struct{}
)

// Item commands, delivered to the focused list.
type (
	AddItemBefore    struct{}
	AddItemAfter     struct{}
	DeleteItem       struct{}
	EditItem         struct{}
	EditDescription  struct{}
	ToggleCompletion struct{}
	IncreasePriority struct{}
	DecreasePriority struct{}
	MoveItemUp       struct{}
	MoveItemDown     struct{}
	MoveItemTop      struct{}
	MoveItemBottom   struct{}
)

// SendKey carries a raw key press to the focused recipient while in insert mode.
type SendKey struct{ Key tea.KeyMsg }

// Storage mutations.
type (
	AddTask         struct{ Task model.AddTask }
	AddWorkspace    struct{ Workspace model.AddWorkspace }
	UpdateTask      struct{ Task model.UpdateTask }
	UpdateWorkspace struct{ Workspace model.UpdateWorkspace }
	RemoveTask      struct{ ID string }
	RemoveWorkspace struct{ ID string }
)

// Data requests and arrivals.
type (
	RequestTasksData      struct{ WorkspaceID string }
	RequestWorkspacesData struct{}
	NewTasksData          struct {
		WorkspaceID string
		Tasks       []model.Task
	}
	NewWorkspacesData struct{ Workspaces []model.Workspace }
)

// Selection and focus.
type (
	SelectWorkspace   struct{ ID string }
	UnselectWorkspace struct{}
	FocusOnTasks      struct{}
	FocusOnWorkspaces struct{}
)

// Conflict highlights.
type (
	HighlightTask      struct{ Name string }
	HighlightWorkspace struct{ Name string }
)

// Sorting.
type (
	OpenSortMenu        struct{}
	SetupSortMenu       struct{ Target ComponentID }
	ExitSortMenu        struct{ Return ComponentID }
	SortTasks           struct{ Sorter model.TaskSorter }
	SortWorkspaces      struct{ Sorter model.WorkspaceSorter }
	ToggleSortDirection struct{}
	Select              struct{}
	Cancel              struct{}
)

func (Tick) isAction()                  {}
func (Render) isAction()                {}
func (Suspend) isAction()               {}
func (Resume) isAction()                {}
func (Quit) isAction()                  {}
func (ClearScreen) isAction()           {}
func (Help) isAction()                  {}
func (Resize) isAction()                {}
func (Error) isAction()                 {}
func (GoUp) isAction()                  {}
func (GoDown) isAction()                {}
func (GoToTop) isAction()               {}
func (GoToBottom) isAction()            {}
func (EnterInsertMode) isAction()       {}
func (LeaveInsertMode) isAction()       {}
func (AddItemBefore) isAction()         {}
func (AddItemAfter) isAction()          {}
func (DeleteItem) isAction()            {}
func (EditItem) isAction()              {}
func (EditDescription) isAction()       {}
func (ToggleCompletion) isAction()      {}
func (IncreasePriority) isAction()      {}
func (DecreasePriority) isAction()      {}
func (MoveItemUp) isAction()            {}
func (MoveItemDown) isAction()          {}
func (MoveItemTop) isAction()           {}
func (MoveItemBottom) isAction()        {}
func (SendKey) isAction()               {}
func (AddTask) isAction()               {}
func (AddWorkspace) isAction()          {}
func (UpdateTask) isAction()            {}
func (UpdateWorkspace) isAction()       {}
func (RemoveTask) isAction()            {}
func (RemoveWorkspace) isAction()       {}
func (RequestTasksData) isAction()      {}
func (RequestWorkspacesData) isAction() {}
func (NewTasksData) isAction()          {}
func (NewWorkspacesData) isAction()     {}
func (SelectWorkspace) isAction()       {}
func (UnselectWorkspace) isAction()     {}
func (FocusOnTasks) isAction()          {}
func (FocusOnWorkspaces) isAction()     {}
func (HighlightTask) isAction()         {}
func (HighlightWorkspace) isAction()    {}
func (OpenSortMenu) isAction()          {}
func (SetupSortMenu) isAction()         {}
func (ExitSortMenu) isAction()          {}
func (SortTasks) isAction()             {}
func (SortWorkspaces) isAction()        {}
func (ToggleSortDirection) isAction()   {}
func (Select) isAction()                {}
func (Cancel) isAction()                {}

// Name is the variant name used in logs and keybinding config, e.g. "MoveItemUp".
func Name(a Action) string {
	if a == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%T", a)
	// "action.MoveItemUp" -> "MoveItemUp"
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}

// Quiet reports actions too frequent to log at debug level.
func Quiet(a Action) bool {
	switch a.(type) {
	case Tick, Render:
		return true
	default:
		return false
	}
}
