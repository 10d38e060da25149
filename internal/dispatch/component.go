package dispatch

import (
	"context"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/model"
)

// Component is an addressable recipient of actions.
//
// Components never call each other or the dispatcher: follow-up work is sent on the
// Sender handed to Register.
type Component interface {
	Register(out action.Sender)
	Init() error
	Update(ctx context.Context, a action.Action) error
	View(width, height int) string
	Focus(focused bool)
}

// Storage is what the storage recipients need from the persistent store.
type Storage interface {
	AddTask(ctx context.Context, req model.AddTask) (string, error)
	AddWorkspace(ctx context.Context, req model.AddWorkspace) (string, error)
	UpdateTask(ctx context.Context, req model.UpdateTask) error
	UpdateWorkspace(ctx context.Context, req model.UpdateWorkspace) error
	RemoveTask(ctx context.Context, id string) error
	RemoveWorkspace(ctx context.Context, id string) error
	ListTasks(ctx context.Context, workspaceID string) ([]model.Task, error)
	ListWorkspaces(ctx context.Context) ([]model.Workspace, error)
}

// Base provides no-op implementations for recipients that only care about Update.
type Base struct {
	Out action.Sender
}

func (b *Base) Register(out action.Sender)    { b.Out = out }
func (b *Base) Init() error                   { return nil }
func (b *Base) View(width, height int) string { return "" }
func (b *Base) Focus(bool)                    {}

// Send is a nil-safe shortcut for b.Out.Send.
func (b *Base) Send(a action.Action) {
	if b.Out != nil {
		b.Out.Send(a)
	}
}
