package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

func TestDoctor_CleanStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wsID, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: "Home"})
	require.NoError(t, err)
	_, err = s.AddTask(ctx, model.AddTask{WorkspaceID: wsID, Name: "Buy milk"})
	require.NoError(t, err)

	report, err := s.Doctor(ctx, false)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
	require.False(t, report.HasErrors())
}

func TestDoctor_FixesBrokenOrderAndPriority(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wsID, err := s.AddWorkspace(ctx, model.AddWorkspace{Name: "Home"})
	require.NoError(t, err)
	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := s.AddTask(ctx, model.AddTask{WorkspaceID: wsID, Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Simulate a write that bypassed the store: a hole and a duplicate.
	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET task_order = 5 WHERE id = ?`, ids[0])
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET priority = 9 WHERE id = ?`, ids[1])
	require.NoError(t, err)

	report, err := s.Doctor(ctx, false)
	require.NoError(t, err)
	require.True(t, report.HasErrors())
	codes := map[string]bool{}
	for _, it := range report.Issues {
		codes[it.Code] = true
	}
	require.True(t, codes["order_not_dense"])
	require.True(t, codes["priority_out_of_range"])

	report, err = s.Doctor(ctx, true)
	require.NoError(t, err)
	require.False(t, report.HasErrors())

	tasks := requireDenseTasks(t, s, wsID)
	require.Equal(t, []string{"b", "c", "a"}, []string{tasks[0].Name, tasks[1].Name, tasks[2].Name})
	require.Equal(t, model.MaxPriority, tasks[0].Priority)

	report, err = s.Doctor(ctx, false)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
}
