package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmed-hajnasr/do-me/internal/model"
	"github.com/mmed-hajnasr/do-me/internal/store"
)

func newTasksCmd(app *App) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands (scoped to one workspace)",
	}
	cmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", envOr("DO_ME_WORKSPACE", ""), "Workspace id or name")

	cmd.AddCommand(newTasksListCmd(app, &workspace))
	cmd.AddCommand(newTasksAddCmd(app, &workspace))
	cmd.AddCommand(newTasksEditCmd(app, &workspace))
	cmd.AddCommand(newTasksMoveCmd(app, &workspace))
	cmd.AddCommand(newTasksDoneCmd(app, &workspace))
	cmd.AddCommand(newTasksRmCmd(app, &workspace))
	return cmd
}

var errNoWorkspace = errors.New("no workspace given; pass --workspace or set DO_ME_WORKSPACE")

// openWorkspace opens the store and resolves ref to a workspace.
func openWorkspace(ctx context.Context, app *App, ref string) (*store.Store, model.Workspace, error) {
	if ref == "" {
		return nil, model.Workspace{}, errNoWorkspace
	}
	s, err := app.openStore(ctx)
	if err != nil {
		return nil, model.Workspace{}, err
	}
	w, err := s.FindWorkspace(ctx, ref)
	if err != nil {
		_ = s.Close()
		return nil, model.Workspace{}, err
	}
	return s, w, nil
}

func newTasksListCmd(app *App, workspace *string) *cobra.Command {
	var sortKey string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sorter, err := parseTaskSort(sortKey, desc)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, w, err := openWorkspace(cmd.Context(), app, *workspace)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			tasks, err := s.ListTasks(cmd.Context(), w.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			sorter.Sort(tasks)
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", string(model.TaskSortOrder), "Sort key (order|name|completion|created|priority|description)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newTasksAddCmd(app *App, workspace *string) *cobra.Command {
	var description string
	var priority, at int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, w, err := openWorkspace(cmd.Context(), app, *workspace)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			req := model.AddTask{WorkspaceID: w.ID, Name: args[0]}
			if cmd.Flags().Changed("description") {
				req.Description = model.Ptr(description)
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = model.Ptr(priority)
			}
			if cmd.Flags().Changed("at") {
				req.Order = model.Ptr(at)
			}
			id, err := s.AddTask(cmd.Context(), req)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := s.GetTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().IntVar(&priority, "priority", model.DefaultPriority, "Priority, 1 (most urgent) to 4")
	cmd.Flags().IntVar(&at, "at", 0, "Position to insert at (default: append)")
	return cmd
}

func newTasksEditCmd(app *App, workspace *string) *cobra.Command {
	var name, description string
	var priority int

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change a task's name, description or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTask(cmd, app, *workspace, args[0], func(u *model.UpdateTask) error {
				if cmd.Flags().Changed("name") {
					u.Name = model.Ptr(name)
				}
				if cmd.Flags().Changed("description") {
					u.Description = model.Ptr(description)
				}
				if cmd.Flags().Changed("priority") {
					u.Priority = model.Ptr(priority)
				}
				if u.IsEmpty() {
					return errors.New("nothing to change; pass --name, --description or --priority")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description (empty clears it)")
	cmd.Flags().IntVar(&priority, "priority", model.DefaultPriority, "New priority, 1 (most urgent) to 4")
	return cmd
}

func newTasksMoveCmd(app *App, workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task> <position>",
		Short: "Move a task to a position (0 is the top)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTask(cmd, app, *workspace, args[0], func(u *model.UpdateTask) error {
				to, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				u.Order = model.Ptr(to)
				return nil
			})
		},
	}
}

func newTasksDoneCmd(app *App, workspace *string) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTask(cmd, app, *workspace, args[0], func(u *model.UpdateTask) error {
				u.Completed = model.Ptr(!undo)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task not completed")
	return cmd
}

func updateTask(cmd *cobra.Command, app *App, workspace, ref string, edit func(*model.UpdateTask) error) error {
	s, w, err := openWorkspace(cmd.Context(), app, workspace)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	t, err := s.FindTask(cmd.Context(), w.ID, ref)
	if err != nil {
		return writeErr(cmd, err)
	}
	req := model.UpdateTask{ID: t.ID}
	if err := edit(&req); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.UpdateTask(cmd.Context(), req); err != nil {
		return writeErr(cmd, err)
	}
	t, err = s.GetTask(cmd.Context(), t.ID)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": t})
}

func newTasksRmCmd(app *App, workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, w, err := openWorkspace(cmd.Context(), app, *workspace)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			t, err := s.FindTask(cmd.Context(), w.ID, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.RemoveTask(cmd.Context(), t.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"id": t.ID, "name": t.Name}})
		},
	}
}
