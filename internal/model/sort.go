package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type TaskSortKey string

const (
	TaskSortOrder       TaskSortKey = "order"
	TaskSortName        TaskSortKey = "name"
	TaskSortCompletion  TaskSortKey = "completion"
	TaskSortCreatedAt   TaskSortKey = "created"
	TaskSortPriority    TaskSortKey = "priority"
	TaskSortDescription TaskSortKey = "description"
)

// TaskSortKeys lists the keys offered by the sort menu, in menu order.
var TaskSortKeys = []TaskSortKey{
	TaskSortOrder,
	TaskSortName,
	TaskSortCompletion,
	TaskSortCreatedAt,
	TaskSortPriority,
	TaskSortDescription,
}

func (k TaskSortKey) Label() string {
	switch k {
	case TaskSortOrder:
		return "Order"
	case TaskSortName:
		return "Name"
	case TaskSortCompletion:
		return "Completion"
	case TaskSortCreatedAt:
		return "Date created"
	case TaskSortPriority:
		return "Priority"
	case TaskSortDescription:
		return "Description"
	default:
		return string(k)
	}
}

type WorkspaceSortKey string

const (
	WorkspaceSortOrder     WorkspaceSortKey = "order"
	WorkspaceSortName      WorkspaceSortKey = "name"
	WorkspaceSortCreatedAt WorkspaceSortKey = "created"
	WorkspaceSortUpdatedAt WorkspaceSortKey = "updated"
)

var WorkspaceSortKeys = []WorkspaceSortKey{
	WorkspaceSortOrder,
	WorkspaceSortName,
	WorkspaceSortCreatedAt,
	WorkspaceSortUpdatedAt,
}

func (k WorkspaceSortKey) Label() string {
	switch k {
	case WorkspaceSortOrder:
		return "Order"
	case WorkspaceSortName:
		return "Name"
	case WorkspaceSortCreatedAt:
		return "Date created"
	case WorkspaceSortUpdatedAt:
		return "Last updated"
	default:
		return string(k)
	}
}

// TaskSorter orders tasks for display. The zero value sorts by ascending order.
// Ties on the sort key fall back to persisted order, then ID, so the result is total.
type TaskSorter struct {
	Key  TaskSortKey `json:"key,omitempty"`
	Desc bool        `json:"desc,omitempty"`
}

func (s TaskSorter) String() string {
	return fmt.Sprintf("%s %s", s.key(), direction(s.Desc))
}

func (s TaskSorter) key() TaskSortKey {
	if s.Key == "" {
		return TaskSortOrder
	}
	return s.Key
}

// Sort sorts tasks in place.
func (s TaskSorter) Sort(tasks []Task) {
	key := s.key()
	slices.SortStableFunc(tasks, func(a, b Task) int {
		c := compareTasks(key, a, b)
		if s.Desc {
			c = -c
		}
		return cmp.Or(c, tieBreak(a.Order, b.Order, a.ID, b.ID))
	})
}

func compareTasks(key TaskSortKey, a, b Task) int {
	switch key {
	case TaskSortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case TaskSortCompletion:
		return compareBool(a.Completed, b.Completed)
	case TaskSortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case TaskSortPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case TaskSortDescription:
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	default:
		return cmp.Compare(a.Order, b.Order)
	}
}

// WorkspaceSorter orders workspaces for display. The zero value sorts by ascending order.
type WorkspaceSorter struct {
	Key  WorkspaceSortKey `json:"key,omitempty"`
	Desc bool             `json:"desc,omitempty"`
}

func (s WorkspaceSorter) String() string {
	return fmt.Sprintf("%s %s", s.key(), direction(s.Desc))
}

func (s WorkspaceSorter) key() WorkspaceSortKey {
	if s.Key == "" {
		return WorkspaceSortOrder
	}
	return s.Key
}

func (s WorkspaceSorter) Sort(workspaces []Workspace) {
	key := s.key()
	slices.SortStableFunc(workspaces, func(a, b Workspace) int {
		c := compareWorkspaces(key, a, b)
		if s.Desc {
			c = -c
		}
		return cmp.Or(c, tieBreak(a.Order, b.Order, a.ID, b.ID))
	})
}

func compareWorkspaces(key WorkspaceSortKey, a, b Workspace) int {
	switch key {
	case WorkspaceSortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case WorkspaceSortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case WorkspaceSortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return cmp.Compare(a.Order, b.Order)
	}
}

func tieBreak(orderA, orderB int, idA, idB string) int {
	return cmp.Or(cmp.Compare(orderA, orderB), strings.Compare(idA, idB))
}

// compareBool puts false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func direction(desc bool) string {
	if desc {
		return "desc"
	}
	return "asc"
}
