package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/store"
)

// RegisterStorage registers the three storage recipients backed by s.
func (d *Dispatcher) RegisterStorage(s Storage) {
	d.Register(action.DatabaseGet, NewStorageGet(s, d.log))
	d.Register(action.DatabaseSetTasks, NewStorageSetTasks(s, d.log))
	d.Register(action.DatabaseSetWorkspaces, NewStorageSetWorkspaces(s, d.log))
}

// StorageGet answers data requests with fresh lists.
type StorageGet struct {
	Base
	store Storage
	log   *log.Logger
}

func NewStorageGet(s Storage, logger *log.Logger) *StorageGet {
	return &StorageGet{store: s, log: logger}
}

func (g *StorageGet) Update(ctx context.Context, a action.Action) error {
	switch a := a.(type) {
	case action.RequestTasksData:
		if a.WorkspaceID == "" {
			return nil
		}
		tasks, err := g.store.ListTasks(ctx, a.WorkspaceID)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		g.Send(action.NewTasksData{WorkspaceID: a.WorkspaceID, Tasks: tasks})
	case action.RequestWorkspacesData:
		ws, err := g.store.ListWorkspaces(ctx)
		if err != nil {
			return fmt.Errorf("list workspaces: %w", err)
		}
		g.Send(action.NewWorkspacesData{Workspaces: ws})
	}
	return nil
}

// StorageSetTasks applies task mutations and re-fetches the selected workspace's tasks.
type StorageSetTasks struct {
	Base
	store    Storage
	log      *log.Logger
	selected string
}

func NewStorageSetTasks(s Storage, logger *log.Logger) *StorageSetTasks {
	return &StorageSetTasks{store: s, log: logger}
}

func (w *StorageSetTasks) Update(ctx context.Context, a action.Action) error {
	var err error
	switch a := a.(type) {
	case action.SelectWorkspace:
		w.selected = a.ID
		return nil
	case action.UnselectWorkspace:
		w.selected = ""
		return nil
	case action.AddTask:
		_, err = w.store.AddTask(ctx, a.Task)
	case action.UpdateTask:
		err = w.store.UpdateTask(ctx, a.Task)
	case action.RemoveTask:
		err = w.store.RemoveTask(ctx, a.ID)
	default:
		return nil
	}
	if err := recoverWrite(w.log, w.Out, err, func(name string) action.Action {
		return action.HighlightTask{Name: name}
	}); err != nil {
		return err
	}
	if w.selected != "" {
		w.Send(action.RequestTasksData{WorkspaceID: w.selected})
	}
	return nil
}

// StorageSetWorkspaces applies workspace mutations and re-fetches the workspace list.
type StorageSetWorkspaces struct {
	Base
	store Storage
	log   *log.Logger
}

func NewStorageSetWorkspaces(s Storage, logger *log.Logger) *StorageSetWorkspaces {
	return &StorageSetWorkspaces{store: s, log: logger}
}

func (w *StorageSetWorkspaces) Update(ctx context.Context, a action.Action) error {
	var err error
	switch a := a.(type) {
	case action.AddWorkspace:
		_, err = w.store.AddWorkspace(ctx, a.Workspace)
	case action.UpdateWorkspace:
		err = w.store.UpdateWorkspace(ctx, a.Workspace)
	case action.RemoveWorkspace:
		err = w.store.RemoveWorkspace(ctx, a.ID)
	default:
		return nil
	}
	if err := recoverWrite(w.log, w.Out, err, func(name string) action.Action {
		return action.HighlightWorkspace{Name: name}
	}); err != nil {
		return err
	}
	w.Send(action.RequestWorkspacesData{})
	return nil
}

// recoverWrite turns domain failures into UI feedback. Anything else is fatal.
func recoverWrite(logger *log.Logger, out action.Sender, err error, highlight func(name string) action.Action) error {
	if err == nil {
		return nil
	}
	var dup *store.DuplicateNameError
	switch {
	case errors.As(err, &dup):
		logger.Info("duplicate name", "kind", dup.Kind, "name", dup.Name)
		if out != nil {
			out.Send(highlight(dup.Name))
		}
		return nil
	case store.IsNotFound(err):
		logger.Warn("write skipped", "err", err)
		return nil
	case errors.Is(err, store.ErrEmptyName):
		logger.Debug("write skipped", "err", err)
		return nil
	default:
		return err
	}
}
