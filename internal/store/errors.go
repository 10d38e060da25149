package store

import (
	"errors"
	"fmt"
)

var ErrEmptyName = errors.New("name must not be empty")

// DuplicateNameError is returned when a name is already taken in its scope
// (per workspace for tasks, globally for workspaces).
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// OrderInvariantError reports a scope whose order values are not exactly 0..n-1.
// It indicates a bug in the store, never bad input.
type OrderInvariantError struct {
	Scope  string
	Orders []int
}

func (e *OrderInvariantError) Error() string {
	return fmt.Sprintf("order invariant violated in %s: %v", e.Scope, e.Orders)
}

func IsDuplicateName(err error) bool {
	var dup *DuplicateNameError
	return errors.As(err, &dup)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
