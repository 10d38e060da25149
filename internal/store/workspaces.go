package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

const workspaceColumns = `id, name, workspace_order, created_at_unixms, updated_at_unixms`

// AddWorkspace inserts a workspace at req.Order (clamped to [0, n]) or appends it.
func (s *Store) AddWorkspace(ctx context.Context, req model.AddWorkspace) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", ErrEmptyName
	}
	now := s.now()
	id, err := s.ids.next("ws", now)
	if err != nil {
		return "", err
	}

	sc := workspaceScope()
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.ensureWorkspaceNameFree(ctx, tx, name, ""); err != nil {
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
INSERT INTO workspaces(id, name, workspace_order, created_at_unixms, updated_at_unixms)
VALUES (?, ?, ?, ?, ?)`, id, name, pos, now.UnixMilli(), now.UnixMilli()); err != nil {
			if isUniqueViolation(err) {
				return &DuplicateNameError{Kind: "workspace", Name: name}
			}
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateWorkspace applies the non-nil fields of req. A new Order is clamped to [0, n-1].
func (s *Store) UpdateWorkspace(ctx context.Context, req model.UpdateWorkspace) error {
	sc := workspaceScope()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getWorkspace(ctx, tx, req.ID)
		if err != nil {
			return err
		}
		name := cur.Name
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrEmptyName
			}
			if name != cur.Name {
				if err := s.ensureWorkspaceNameFree(ctx, tx, name, cur.ID); err != nil {
					return err
				}
			}
		}
		order := cur.Order
		if req.Order != nil {
			n, err := sc.count(ctx, tx)
			if err != nil {
				return err
			}
			order = clampMove(*req.Order, n)
			if err := sc.move(ctx, tx, cur.Order, order); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE workspaces SET name = ?, workspace_order = ?, updated_at_unixms = ?
WHERE id = ?`, name, order, s.now().UnixMilli(), cur.ID); err != nil {
			if isUniqueViolation(err) {
				return &DuplicateNameError{Kind: "workspace", Name: name}
			}
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
}

// RemoveWorkspace deletes a workspace and, by cascade, its tasks.
func (s *Store) RemoveWorkspace(ctx context.Context, id string) error {
	sc := workspaceScope()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getWorkspace(ctx, tx, id)
		if err != nil {
			return err
		}
		n, err := sc.count(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, cur.ID); err != nil {
			return err
		}
		if err := sc.closeGap(ctx, tx, cur.Order, n); err != nil {
			return err
		}
		return s.verifyScopes(ctx, tx, sc)
	})
}

// ListWorkspaces returns every workspace by ascending order.
func (s *Store) ListWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces ORDER BY workspace_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) GetWorkspace(ctx context.Context, id string) (model.Workspace, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	w, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workspace{}, &NotFoundError{Kind: "workspace", ID: id}
	}
	return w, err
}

// FindWorkspace resolves a workspace by id or, failing that, by exact name.
func (s *Store) FindWorkspace(ctx context.Context, ref string) (model.Workspace, error) {
	ref = strings.TrimSpace(ref)
	if w, err := s.GetWorkspace(ctx, ref); err == nil || !IsNotFound(err) {
		return w, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE name = ?`, ref)
	w, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workspace{}, &NotFoundError{Kind: "workspace", ID: ref}
	}
	return w, err
}

func (s *Store) ensureWorkspaceNameFree(ctx context.Context, tx *sql.Tx, name, selfID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM workspaces WHERE name = ?`, name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case id == selfID:
		return nil
	default:
		return &DuplicateNameError{Kind: "workspace", Name: name}
	}
}

// touchWorkspace bumps a workspace's update time after its tasks change.
func (s *Store) touchWorkspace(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `UPDATE workspaces SET updated_at_unixms = ? WHERE id = ?`, s.now().UnixMilli(), id)
	return err
}

func getWorkspace(ctx context.Context, tx *sql.Tx, id string) (model.Workspace, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	w, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workspace{}, &NotFoundError{Kind: "workspace", ID: id}
	}
	return w, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(r rowScanner) (model.Workspace, error) {
	var (
		w                model.Workspace
		created, updated int64
	)
	if err := r.Scan(&w.ID, &w.Name, &w.Order, &created, &updated); err != nil {
		return model.Workspace{}, err
	}
	w.CreatedAt = fromUnixMs(created)
	w.UpdatedAt = fromUnixMs(updated)
	return w, nil
}
