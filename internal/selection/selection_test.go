package selection

import (
	"fmt"
	"testing"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

func displayOrders(tasks []model.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.Order
	}
	return out
}

// insertAt mimics the store: shift orders >= pos and add the new task at pos.
func insertAt(tasks []model.Task, name string, pos int) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	for _, t := range tasks {
		if t.Order >= pos {
			t.Order++
		}
		out = append(out, t)
	}
	return append(out, model.Task{ID: "new", Name: name, Order: pos, Priority: 2})
}

func TestResolve_InsertSelectsNewItemUnderAnySort(t *testing.T) {
	t.Parallel()

	base := []model.Task{
		{ID: "1", Name: "delta", Order: 0, Priority: 4},
		{ID: "2", Name: "alpha", Order: 1, Priority: 1, Completed: true},
		{ID: "3", Name: "echo", Order: 2, Priority: 3},
		{ID: "4", Name: "bravo", Order: 3, Priority: 2},
		{ID: "5", Name: "charlie", Order: 4, Priority: 3},
	}

	for _, key := range model.TaskSortKeys {
		for _, desc := range []bool{false, true} {
			sorter := model.TaskSorter{Key: key, Desc: desc}
			t.Run(sorter.String(), func(t *testing.T) {
				t.Parallel()
				tr := New()
				scope := "ws-1"

				before := append([]model.Task(nil), base...)
				sorter.Sort(before)
				if _, ok := tr.Resolve(scope, displayOrders(before)); !ok {
					t.Fatalf("expected a selection")
				}

				tr.Hint(scope, AtOrder(2))
				after := insertAt(base, "foxtrot", 2)
				sorter.Sort(after)

				idx, ok := tr.Resolve(scope, displayOrders(after))
				if !ok {
					t.Fatalf("expected a selection after reload")
				}
				if after[idx].ID != "new" {
					t.Fatalf("expected new task selected; got %q at %d", after[idx].Name, idx)
				}
				if tr.HasHint(scope) {
					t.Fatalf("hint must be consumed")
				}
			})
		}
	}
}

func TestResolve_Priority(t *testing.T) {
	t.Parallel()

	orders := []int{0, 1, 2, 3}
	tests := []struct {
		name   string
		setup  func(tr *Tracker)
		orders []int
		want   int
		wantOK bool
	}{
		{name: "nothing known selects first", setup: func(*Tracker) {}, orders: orders, want: 0, wantOK: true},
		{name: "remembered", setup: func(tr *Tracker) { tr.Remember("s", 2) }, orders: orders, want: 2, wantOK: true},
		{name: "remembered is clamped", setup: func(tr *Tracker) { tr.Remember("s", 9) }, orders: orders, want: 3, wantOK: true},
		{name: "hint beats remembered", setup: func(tr *Tracker) { tr.Remember("s", 2); tr.Hint("s", AtIndex(1)) }, orders: orders, want: 1, wantOK: true},
		{name: "order hint follows display", setup: func(tr *Tracker) { tr.Hint("s", AtOrder(0)) }, orders: []int{3, 2, 1, 0}, want: 3, wantOK: true},
		{name: "missing order is clamped", setup: func(tr *Tracker) { tr.Hint("s", AtOrder(7)) }, orders: []int{0, 1}, want: 1, wantOK: true},
		{name: "negative index clamps to zero", setup: func(tr *Tracker) { tr.Hint("s", AtIndex(-4)) }, orders: orders, want: 0, wantOK: true},
		{name: "empty selects nothing", setup: func(tr *Tracker) { tr.Remember("s", 1) }, orders: nil, want: -1, wantOK: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := New()
			tt.setup(tr)
			got, ok := tr.Resolve("s", tt.orders)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Resolve=%d,%v want %d,%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_HintsAreScoped(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Hint("ws-a", AtIndex(3))
	if got, _ := tr.Resolve("ws-b", []int{0, 1, 2, 3}); got != 0 {
		t.Fatalf("hint leaked into another scope: %d", got)
	}
	if !tr.HasHint("ws-a") {
		t.Fatalf("reload of another scope consumed the hint")
	}
	if got, _ := tr.Resolve("ws-a", []int{0, 1, 2, 3}); got != 3 {
		t.Fatalf("expected hinted row 3; got %d", got)
	}
	// Next reload without a hint keeps the row.
	if got, _ := tr.Resolve("ws-a", []int{0, 1, 2, 3}); got != 3 {
		t.Fatalf("expected remembered row 3; got %d", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	t.Parallel()

	tr := New()
	for i := 0; i < 3; i++ {
		tr.Remember(fmt.Sprintf("ws-%d", i), i)
	}
	snap := tr.Snapshot()

	tr2 := New()
	tr2.Restore(snap)
	if got, _ := tr2.Resolve("ws-2", []int{0, 1, 2}); got != 2 {
		t.Fatalf("expected restored row 2; got %d", got)
	}
	tr.Forget("ws-1")
	if _, ok := tr.Snapshot()["ws-1"]; ok {
		t.Fatalf("Forget must drop the scope")
	}
}
