package store

import (
	"context"
	"database/sql"
	"sort"
)

// scope names one ordered collection: every workspace, or the tasks of one workspace.
// Order values inside a scope are always exactly 0..n-1.
type scope struct {
	name   string
	table  string
	column string
	where  string
	args   []any
}

func workspaceScope() scope {
	return scope{
		name:   "workspaces",
		table:  "workspaces",
		column: "workspace_order",
		where:  "1=1",
	}
}

func taskScope(workspaceID string) scope {
	return scope{
		name:   "tasks of " + workspaceID,
		table:  "tasks",
		column: "task_order",
		where:  "workspace_id = ?",
		args:   []any{workspaceID},
	}
}

func (s scope) count(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+s.table+` WHERE `+s.where, s.args...).Scan(&n)
	return n, err
}

// shift adds delta to every order in [from, to].
func (s scope) shift(ctx context.Context, tx *sql.Tx, from, to, delta int) error {
	if from > to {
		return nil
	}
	q := `UPDATE ` + s.table + ` SET ` + s.column + ` = ` + s.column + ` + ?
WHERE ` + s.where + ` AND ` + s.column + ` >= ? AND ` + s.column + ` <= ?`
	args := append([]any{delta}, s.args...)
	args = append(args, from, to)
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// openGap makes room for an insert at pos in a scope of n records.
func (s scope) openGap(ctx context.Context, tx *sql.Tx, pos, n int) error {
	return s.shift(ctx, tx, pos, n-1, 1)
}

// closeGap fills the hole left by a record removed from pos.
func (s scope) closeGap(ctx context.Context, tx *sql.Tx, pos, n int) error {
	return s.shift(ctx, tx, pos+1, n, -1)
}

// move shifts the records between from and to so that to becomes free for the
// moved record. The moved record itself must be assigned by the caller.
func (s scope) move(ctx context.Context, tx *sql.Tx, from, to int) error {
	switch {
	case from < to:
		return s.shift(ctx, tx, from+1, to, -1)
	case to < from:
		return s.shift(ctx, tx, to, from-1, 1)
	default:
		return nil
	}
}

func (s scope) orders(ctx context.Context, tx *sql.Tx) ([]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+s.column+` FROM `+s.table+` WHERE `+s.where+` ORDER BY `+s.column, s.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var o int
		if err := rows.Scan(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// verify fails with *OrderInvariantError unless the scope's orders are dense.
func (s scope) verify(ctx context.Context, tx *sql.Tx) error {
	orders, err := s.orders(ctx, tx)
	if err != nil {
		return err
	}
	if !Dense(orders) {
		return &OrderInvariantError{Scope: s.name, Orders: orders}
	}
	return nil
}

// Dense reports whether orders is a permutation of 0..len(orders)-1.
func Dense(orders []int) bool {
	sorted := append([]int(nil), orders...)
	sort.Ints(sorted)
	for i, o := range sorted {
		if o != i {
			return false
		}
	}
	return true
}

// clampInsert bounds a requested insert position to [0, n].
func clampInsert(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// clampMove bounds a requested move target to [0, n-1].
func clampMove(pos, n int) int {
	if n <= 0 || pos < 0 {
		return 0
	}
	if pos > n-1 {
		return n - 1
	}
	return pos
}

func (s *Store) verifyScopes(ctx context.Context, tx *sql.Tx, scopes ...scope) error {
	if !s.opts.VerifyOrder {
		return nil
	}
	for _, sc := range scopes {
		if err := sc.verify(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
