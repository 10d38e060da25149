package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

const taskColumns = `id, workspace_id, name, description, priority, completed, task_order, created_at_unixms`

// AddTask inserts a task into req.WorkspaceID at req.Order (clamped to [0, n]) or appends it.
func (s *Store) AddTask(ctx context.Context, req model.AddTask) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", ErrEmptyName
	}
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	prio := model.DefaultPriority
	if req.Priority != nil {
		prio = model.ClampPriority(*req.Priority)
	}
	now := s.now()
	id, err := s.ids.next("task", now)
	if err != nil {
		return "", err
	}

	sc := taskScope(req.WorkspaceID)
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getWorkspace(ctx, tx, req.WorkspaceID); err != nil {
			return err
		}
		if err := s.ensureTaskNameFree(ctx, tx, req.WorkspaceID, name, ""); err != nil {
			return err
		}
		n, err := sc.count(ctx, tx)
		if err != nil {
			return err
		}
		pos := n
		if req.Order != nil {
			pos = clampInsert(*req.Order, n)
		}
		if err := sc.openGap(ctx, tx, pos, n); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tasks(id, workspace_id, name, description, priority, completed, task_order, created_at_unixms)
VALUES (?, ?, ?, ?, ?, 0, ?, ?)`, id, req.WorkspaceID, name, desc, prio, pos, now.UnixMilli()); err != nil {
			if isUniqueViolation(err) {
				return &DuplicateNameError{Kind: "task", Name: name}
			}
			return err
		}
		if err := s.touchWorkspace(ctx, tx, req.WorkspaceID); err != nil {
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateTask applies the non-nil fields of req. A new Order is clamped to [0, n-1]
// and moves the task with a single shift of the records in between.
func (s *Store) UpdateTask(ctx context.Context, req model.UpdateTask) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, req.ID)
		if err != nil {
			return err
		}
		sc := taskScope(cur.WorkspaceID)

		next := cur
		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
			if next.Name == "" {
				return ErrEmptyName
			}
			if next.Name != cur.Name {
				if err := s.ensureTaskNameFree(ctx, tx, cur.WorkspaceID, next.Name, cur.ID); err != nil {
					return err
				}
			}
		}
		if req.Description != nil {
			next.Description = *req.Description
		}
		if req.Priority != nil {
			next.Priority = model.ClampPriority(*req.Priority)
		}
		if req.Completed != nil {
			next.Completed = *req.Completed
		}
		if req.Order != nil {
			n, err := sc.count(ctx, tx)
			if err != nil {
				return err
			}
			next.Order = clampMove(*req.Order, n)
			if err := sc.move(ctx, tx, cur.Order, next.Order); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE tasks SET name = ?, description = ?, priority = ?, completed = ?, task_order = ?
WHERE id = ?`, next.Name, next.Description, next.Priority, boolToInt(next.Completed), next.Order, cur.ID); err != nil {
			if isUniqueViolation(err) {
				return &DuplicateNameError{Kind: "task", Name: next.Name}
			}
			return err
		}
		if err := s.touchWorkspace(ctx, tx, cur.WorkspaceID); err != nil {
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
}

// RemoveTask deletes a task and closes the order gap it leaves.
func (s *Store) RemoveTask(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		sc := taskScope(cur.WorkspaceID)
		n, err := sc.count(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, cur.ID); err != nil {
			return err
		}
		if err := sc.closeGap(ctx, tx, cur.Order, n); err != nil {
			return err
		}
		if err := s.touchWorkspace(ctx, tx, cur.WorkspaceID); err != nil {
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
}

// ListTasks returns the tasks of a workspace by ascending order.
func (s *Store) ListTasks(ctx context.Context, workspaceID string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE workspace_id = ? ORDER BY task_order`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, &NotFoundError{Kind: "task", ID: id}
	}
	return t, err
}

// FindTask resolves a task of workspaceID by id or, failing that, by exact name.
func (s *Store) FindTask(ctx context.Context, workspaceID, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, err := s.GetTask(ctx, ref); err == nil && t.WorkspaceID == workspaceID {
		return t, nil
	} else if err != nil && !IsNotFound(err) {
		return model.Task{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE workspace_id = ? AND name = ?`, workspaceID, ref)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, &NotFoundError{Kind: "task", ID: ref}
	}
	return t, err
}

func (s *Store) ensureTaskNameFree(ctx context.Context, tx *sql.Tx, workspaceID, name, selfID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM tasks WHERE workspace_id = ? AND name = ?`, workspaceID, name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case id == selfID:
		return nil
	default:
		return &DuplicateNameError{Kind: "task", Name: name}
	}
}

func getTask(ctx context.Context, tx *sql.Tx, id string) (model.Task, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, &NotFoundError{Kind: "task", ID: id}
	}
	return t, err
}

func scanTask(r rowScanner) (model.Task, error) {
	var (
		t         model.Task
		completed int
		created   int64
	)
	if err := r.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Description, &t.Priority, &completed, &t.Order, &created); err != nil {
		return model.Task{}, err
	}
	t.Completed = completed != 0
	t.CreatedAt = fromUnixMs(created)
	return t, nil
}
