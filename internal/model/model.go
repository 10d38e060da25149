package model

import "time"

const (
	MinPriority     = 1
	MaxPriority     = 4
	DefaultPriority = 3
)

type Workspace struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Order     int       `json:"order" yaml:"order"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type Task struct {
	ID          string    `json:"id" yaml:"id"`
	WorkspaceID string    `json:"workspaceId" yaml:"workspaceId"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    int       `json:"priority" yaml:"priority"`
	Completed   bool      `json:"completed" yaml:"completed"`
	Order       int       `json:"order" yaml:"order"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// AddWorkspace requests a new workspace. A nil Order appends.
type AddWorkspace struct {
	Name  string
	Order *int
}

// AddTask requests a new task in WorkspaceID. Nil fields take their defaults
// (empty description, DefaultPriority, appended order).
type AddTask struct {
	WorkspaceID string
	Name        string
	Description *string
	Priority    *int
	Order       *int
}

// UpdateWorkspace is a partial update: nil fields are left unchanged.
type UpdateWorkspace struct {
	ID    string
	Name  *string
	Order *int
}

// UpdateTask is a partial update: nil fields are left unchanged.
type UpdateTask struct {
	ID          string
	Name        *string
	Description *string
	Priority    *int
	Completed   *bool
	Order       *int
}

func (u UpdateTask) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Priority == nil && u.Completed == nil && u.Order == nil
}

// ClampPriority bounds p to [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

func Ptr[T any](v T) *T { return &v }
