package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

func newWorkspacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "Workspace commands",
	}
	cmd.AddCommand(newWorkspacesListCmd(app))
	cmd.AddCommand(newWorkspacesAddCmd(app))
	cmd.AddCommand(newWorkspacesRenameCmd(app))
	cmd.AddCommand(newWorkspacesMoveCmd(app))
	cmd.AddCommand(newWorkspacesRmCmd(app))
	return cmd
}

func newWorkspacesListCmd(app *App) *cobra.Command {
	var sortKey string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sorter, err := parseWorkspaceSort(sortKey, desc)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ws, err := s.ListWorkspaces(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			sorter.Sort(ws)
			return writeOut(cmd, app, map[string]any{"data": ws})
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", string(model.WorkspaceSortOrder), "Sort key (order|name|created|updated)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newWorkspacesAddCmd(app *App) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			req := model.AddWorkspace{Name: args[0]}
			if cmd.Flags().Changed("at") {
				req.Order = model.Ptr(at)
			}
			id, err := s.AddWorkspace(cmd.Context(), req)
			if err != nil {
				return writeErr(cmd, err)
			}
			w, err := s.GetWorkspace(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Position to insert at (default: append)")
	return cmd
}

func newWorkspacesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <workspace> <new-name>",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateWorkspace(cmd, app, args[0], func(u *model.UpdateWorkspace) error {
				u.Name = model.Ptr(args[1])
				return nil
			})
		},
	}
}

func newWorkspacesMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <workspace> <position>",
		Short: "Move a workspace to a position (0 is the top)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateWorkspace(cmd, app, args[0], func(u *model.UpdateWorkspace) error {
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

func updateWorkspace(cmd *cobra.Command, app *App, ref string, edit func(*model.UpdateWorkspace) error) error {
	s, err := app.openStore(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	w, err := s.FindWorkspace(cmd.Context(), ref)
	if err != nil {
		return writeErr(cmd, err)
	}
	req := model.UpdateWorkspace{ID: w.ID}
	if err := edit(&req); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.UpdateWorkspace(cmd.Context(), req); err != nil {
		return writeErr(cmd, err)
	}
	w, err = s.GetWorkspace(cmd.Context(), w.ID)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": w})
}

func newWorkspacesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <workspace>",
		Aliases: []string{"remove"},
		Short:   "Remove a workspace and all of its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			w, err := s.FindWorkspace(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.RemoveWorkspace(cmd.Context(), w.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"id": w.ID, "name": w.Name}})
		},
	}
}
