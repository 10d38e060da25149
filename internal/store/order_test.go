package store

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

var orderSeeds = []int64{432, 1323, 9923, 1425, 8239}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), dbFileName), Options{VerifyOrder: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func requireDenseTasks(t *testing.T, s *Store, workspaceID string) []model.Task {
	t.Helper()
	tasks, err := s.ListTasks(context.Background(), workspaceID)
	require.NoError(t, err)
	orders := make([]int, 0, len(tasks))
	for _, task := range tasks {
		orders = append(orders, task.Order)
	}
	require.Truef(t, Dense(orders), "orders not dense: %v", orders)
	return tasks
}

func requireDenseWorkspaces(t *testing.T, s *Store) []model.Workspace {
	t.Helper()
	ws, err := s.ListWorkspaces(context.Background())
	require.NoError(t, err)
	orders := make([]int, 0, len(ws))
	for _, w := range ws {
		orders = append(orders, w.Order)
	}
	require.Truef(t, Dense(orders), "orders not dense: %v", orders)
	return ws
}

// seedTasks appends 20 tasks then inserts 10 more at random positions.
func seedTasks(t *testing.T, s *Store, rng *rand.Rand, workspaceID string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, err := s.AddTask(ctx, model.AddTask{WorkspaceID: workspaceID, Name: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		requireDenseTasks(t, s, workspaceID)
	}
	for i := 0; i < 10; i++ {
		pos := rng.Intn(25)
		_, err := s.AddTask(ctx, model.AddTask{WorkspaceID: workspaceID, Name: fmt.Sprintf("inserted %d", i), Order: model.Ptr(pos)})
		require.NoError(t, err)
		tasks := requireDenseTasks(t, s, workspaceID)
		for _, task := range tasks {
			if task.Name == fmt.Sprintf("inserted %d", i) {
				require.Equal(t, clampInsert(pos, len(tasks)-1), task.Order)
			}
		}
	}
}

func TestTaskOrder_RandomMoves(t *testing.T) {
	t.Parallel()

	for _, seed := range orderSeeds {
		seed := seed
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := openTestStore(t)
			rng := rand.New(rand.NewSource(seed))

			wsID, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: "inbox"})
			require.NoError(t, err)
			seedTasks(t, s, rng, wsID)

			for i := 0; i < 50; i++ {
				tasks := requireDenseTasks(t, s, wsID)
				victim := tasks[rng.Intn(len(tasks))]
				target := rng.Intn(len(tasks)+6) - 3
				require.NoError(t, s.UpdateTask(ctx, model.UpdateTask{ID: victim.ID, Order: model.Ptr(target)}))

				got, err := s.GetTask(ctx, victim.ID)
				require.NoError(t, err)
				require.Equal(t, clampMove(target, len(tasks)), got.Order)
				requireDenseTasks(t, s, wsID)
			}
		})
	}
}

func TestTaskOrder_RandomRemovals(t *testing.T) {
	t.Parallel()

	for _, seed := range orderSeeds {
		seed := seed
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := openTestStore(t)
			rng := rand.New(rand.NewSource(seed))

			wsID, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: "inbox"})
			require.NoError(t, err)
			seedTasks(t, s, rng, wsID)

			for i := 0; i < 10; i++ {
				tasks := requireDenseTasks(t, s, wsID)
				victim := tasks[rng.Intn(len(tasks))]
				require.NoError(t, s.RemoveTask(ctx, victim.ID))
				require.Len(t, requireDenseTasks(t, s, wsID), len(tasks)-1)
			}
		})
	}
}

func TestWorkspaceOrder_RandomOps(t *testing.T) {
	t.Parallel()

	for _, seed := range orderSeeds {
		seed := seed
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := openTestStore(t)
			rng := rand.New(rand.NewSource(seed))

			for i := 0; i < 15; i++ {
				var order *int
				if i%2 == 1 {
					order = model.Ptr(rng.Intn(i + 3))
				}
				_, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: fmt.Sprintf("ws %d", i), Order: order})
				require.NoError(t, err)
				requireDenseWorkspaces(t, s)
			}
			for i := 0; i < 30; i++ {
				ws := requireDenseWorkspaces(t, s)
				victim := ws[rng.Intn(len(ws))]
				if i%6 == 5 {
					require.NoError(t, s.RemoveWorkspace(ctx, victim.ID))
					continue
				}
				require.NoError(t, s.UpdateWorkspace(ctx, model.UpdateWorkspace{ID: victim.ID, Order: model.Ptr(rng.Intn(len(ws)))}))
			}
			requireDenseWorkspaces(t, s)
		})
	}
}

func TestTaskOrder_MoveToSameIndexIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	wsID, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: "inbox"})
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := s.AddTask(ctx, model.AddTask{WorkspaceID: wsID, Name: name})
		require.NoError(t, err)
	}
	before := requireDenseTasks(t, s, wsID)

	require.NoError(t, s.UpdateTask(ctx, model.UpdateTask{ID: before[2].ID, Order: model.Ptr(2)}))

	after := requireDenseTasks(t, s, wsID)
	for i := range before {
		require.Equal(t, before[i].ID, after[i].ID)
		require.Equal(t, before[i].Order, after[i].Order)
	}
}

func TestDense(t *testing.T) {
	t.Parallel()
	tests := []struct {
		orders []int
		want   bool
	}{
		{nil, true},
		{[]int{0}, true},
		{[]int{2, 0, 1}, true},
		{[]int{1}, false},
		{[]int{0, 0, 1}, false},
		{[]int{0, 2}, false},
	}
	for _, tt := range tests {
		if got := Dense(tt.orders); got != tt.want {
			t.Fatalf("Dense(%v)=%v want %v", tt.orders, got, tt.want)
		}
	}
}
