package model

import (
	"reflect"
	"testing"
	"time"
)

func taskNames(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Name)
	}
	return out
}

func TestTaskSorter(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fixture := func() []Task {
		return []Task{
			{ID: "a", Name: "walk dog", Order: 2, Priority: 1, CreatedAt: base.Add(3 * time.Hour)},
			{ID: "b", Name: "Buy milk", Order: 0, Priority: 4, Completed: true, CreatedAt: base.Add(1 * time.Hour)},
			{ID: "c", Name: "call mom", Order: 1, Priority: 4, CreatedAt: base.Add(2 * time.Hour), Description: "sunday"},
		}
	}

	tests := []struct {
		name   string
		sorter TaskSorter
		want   []string
	}{
		{name: "zero value is order asc", sorter: TaskSorter{}, want: []string{"Buy milk", "call mom", "walk dog"}},
		{name: "order desc", sorter: TaskSorter{Key: TaskSortOrder, Desc: true}, want: []string{"walk dog", "call mom", "Buy milk"}},
		{name: "name is case insensitive", sorter: TaskSorter{Key: TaskSortName}, want: []string{"Buy milk", "call mom", "walk dog"}},
		{name: "priority ties fall back to order", sorter: TaskSorter{Key: TaskSortPriority}, want: []string{"walk dog", "Buy milk", "call mom"}},
		{name: "priority desc keeps ties ascending by order", sorter: TaskSorter{Key: TaskSortPriority, Desc: true}, want: []string{"Buy milk", "call mom", "walk dog"}},
		{name: "completion puts open tasks first", sorter: TaskSorter{Key: TaskSortCompletion}, want: []string{"call mom", "walk dog", "Buy milk"}},
		{name: "created", sorter: TaskSorter{Key: TaskSortCreatedAt}, want: []string{"Buy milk", "call mom", "walk dog"}},
		{name: "description", sorter: TaskSorter{Key: TaskSortDescription}, want: []string{"Buy milk", "walk dog", "call mom"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tasks := fixture()
			tt.sorter.Sort(tasks)
			if got := taskNames(tasks); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Sort(%s):\n got: %v\nwant: %v", tt.sorter, got, tt.want)
			}
		})
	}
}

func TestWorkspaceSorter(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ws := []Workspace{
		{ID: "1", Name: "work", Order: 1, CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
		{ID: "2", Name: "home", Order: 0, CreatedAt: base.Add(time.Minute), UpdatedAt: base},
	}

	WorkspaceSorter{Key: WorkspaceSortUpdatedAt}.Sort(ws)
	if ws[0].Name != "home" || ws[1].Name != "work" {
		t.Fatalf("expected [home work] by updated; got [%s %s]", ws[0].Name, ws[1].Name)
	}
	WorkspaceSorter{Key: WorkspaceSortCreatedAt, Desc: true}.Sort(ws)
	if ws[0].Name != "home" {
		t.Fatalf("expected home first by created desc; got %s", ws[0].Name)
	}
	WorkspaceSorter{}.Sort(ws)
	if ws[0].Order != 0 || ws[1].Order != 1 {
		t.Fatalf("expected order asc; got %d,%d", ws[0].Order, ws[1].Order)
	}
}

func TestClampPriority(t *testing.T) {
	t.Parallel()
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 4: 4, 9: 4} {
		if got := ClampPriority(in); got != want {
			t.Fatalf("ClampPriority(%d)=%d want %d", in, got, want)
		}
	}
}

func TestTaskSorter_EqualOrderFallsBackToID(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "c", Name: "same", Order: 0},
		{ID: "a", Name: "same", Order: 0},
		{ID: "b", Name: "same", Order: 0},
	}
	TaskSorter{Key: TaskSortName, Desc: true}.Sort(tasks)
	if got := []string{tasks[0].ID, tasks[1].ID, tasks[2].ID}; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected ids ascending on full ties; got %v", got)
	}
}
