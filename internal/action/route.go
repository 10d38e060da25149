package action

// Route returns the recipient of a. Every variant maps to a concrete recipient, All or
// Focused; None is only returned for values outside the closed set (nil).
func Route(a Action) ComponentID {
	switch a.(type) {
	case AddTask, UpdateTask, RemoveTask:
		return DatabaseSetTasks
	case AddWorkspace, UpdateWorkspace, RemoveWorkspace:
		return DatabaseSetWorkspaces
	case RequestTasksData, RequestWorkspacesData:
		return DatabaseGet

	case NewTasksData, HighlightTask, SortTasks:
		return Tasks
	case NewWorkspacesData, HighlightWorkspace, SortWorkspaces:
		return Workspaces
	case SetupSortMenu, ToggleSortDirection:
		return SortMenu

	case GoUp, GoDown, GoToTop, GoToBottom,
		AddItemBefore, AddItemAfter, DeleteItem, EditItem, EditDescription,
		ToggleCompletion, IncreasePriority, DecreasePriority,
		MoveItemUp, MoveItemDown, MoveItemTop, MoveItemBottom,
		SendKey, Select, Cancel:
		return Focused

	case Tick, Render, Resize, Suspend, Resume, Quit, ClearScreen, Error, Help,
		EnterInsertMode, LeaveInsertMode,
		SelectWorkspace, UnselectWorkspace, FocusOnTasks, FocusOnWorkspaces,
		OpenSortMenu, ExitSortMenu:
		return All
	}
	return None
}

// Variants returns one zero-ish value of every action variant.
func Variants() []Action {
	return []Action{
		Tick{}, Render{}, Suspend{}, Resume{}, Quit{}, ClearScreen{}, Help{},
		Resize{}, Error{},
		GoUp{}, GoDown{}, GoToTop{}, GoToBottom{},
		EnterInsertMode{}, LeaveInsertMode{},
		AddItemBefore{}, AddItemAfter{}, DeleteItem{}, EditItem{}, EditDescription{},
		ToggleCompletion{}, IncreasePriority{}, DecreasePriority{},
		MoveItemUp{}, MoveItemDown{}, MoveItemTop{}, MoveItemBottom{},
		SendKey{},
		AddTask{}, AddWorkspace{}, UpdateTask{}, UpdateWorkspace{}, RemoveTask{}, RemoveWorkspace{},
		RequestTasksData{}, RequestWorkspacesData{}, NewTasksData{}, NewWorkspacesData{},
		SelectWorkspace{}, UnselectWorkspace{}, FocusOnTasks{}, FocusOnWorkspaces{},
		HighlightTask{}, HighlightWorkspace{},
		OpenSortMenu{}, SetupSortMenu{}, ExitSortMenu{}, SortTasks{}, SortWorkspaces{},
		ToggleSortDirection{}, Select{}, Cancel{},
	}
}
