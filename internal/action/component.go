package action

// ComponentID names an addressable recipient of actions. All, Focused and None are
// virtual targets resolved by the dispatcher.
type ComponentID int

const (
	None ComponentID = iota
	Workspaces
	Tasks
	SortMenu
	StatusBar
	DatabaseGet
	DatabaseSetTasks
	DatabaseSetWorkspaces
	All
	Focused
)

func (c ComponentID) String() string {
	switch c {
	case None:
		return "none"
	case Workspaces:
		return "workspaces"
	case Tasks:
		return "tasks"
	case SortMenu:
		return "sort-menu"
	case StatusBar:
		return "status-bar"
	case DatabaseGet:
		return "database-get"
	case DatabaseSetTasks:
		return "database-set-tasks"
	case DatabaseSetWorkspaces:
		return "database-set-workspaces"
	case All:
		return "all"
	case Focused:
		return "focused"
	default:
		return "unknown"
	}
}

// Concrete reports whether c names a real recipient rather than a virtual target.
func (c ComponentID) Concrete() bool {
	return c != None && c != All && c != Focused
}
