package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

var ErrDoctorIssuesFound = errors.New("doctor found issues")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level" yaml:"level"`
	Code    string           `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`

	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	EntityID string `json:"entityId,omitempty" yaml:"entityId,omitempty"`
	Fixed    bool   `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues" yaml:"issues"`
}

// HasErrors reports unfixed error-level issues.
func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError && !it.Fixed {
			return true
		}
	}
	return false
}

// Doctor checks the database: SQLite integrity, dangling tasks, dense order in every
// scope and value ranges. With fix, broken scopes are renumbered 0..n-1 keeping their
// relative order, and out-of-range priorities are clamped.
func (s *Store) Doctor(ctx context.Context, fix bool) (DoctorReport, error) {
	report := DoctorReport{Issues: []DoctorIssue{}}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var integrity string
		if err := tx.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&integrity); err != nil {
			return fmt.Errorf("integrity check: %w", err)
		}
		if integrity != "ok" {
			report.Issues = append(report.Issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "sqlite_integrity",
				Message: integrity,
			})
		}

		dangling, err := danglingTasks(ctx, tx)
		if err != nil {
			return err
		}
		for _, id := range dangling {
			report.Issues = append(report.Issues, DoctorIssue{
				Level:    DoctorIssueLevelError,
				Code:     "task_without_workspace",
				Message:  "task references a missing workspace",
				EntityID: id,
			})
		}

		scopes := []scope{workspaceScope()}
		ids, err := workspaceIDs(ctx, tx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			scopes = append(scopes, taskScope(id))
		}
		for _, sc := range scopes {
			issue, err := checkScope(ctx, tx, sc, fix)
			if err != nil {
				return err
			}
			if issue != nil {
				report.Issues = append(report.Issues, *issue)
			}
		}

		return checkPriorities(ctx, tx, fix, &report)
	})
	return report, err
}

func danglingTasks(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT t.id FROM tasks t LEFT JOIN workspaces w ON w.id = t.workspace_id WHERE w.id IS NULL ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func workspaceIDs(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM workspaces ORDER BY workspace_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func checkScope(ctx context.Context, tx *sql.Tx, sc scope, fix bool) (*DoctorIssue, error) {
	orders, err := sc.orders(ctx, tx)
	if err != nil {
		return nil, err
	}
	if Dense(orders) {
		return nil, nil
	}
	issue := &DoctorIssue{
		Level:   DoctorIssueLevelError,
		Code:    "order_not_dense",
		Message: fmt.Sprintf("orders %v are not 0..%d", orders, len(orders)-1),
		Scope:   sc.name,
	}
	if fix {
		if err := sc.renumber(ctx, tx); err != nil {
			return nil, err
		}
		issue.Fixed = true
	}
	return issue, nil
}

// renumber rewrites the scope's orders to 0..n-1, ties broken by id.
func (s scope) renumber(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM `+s.table+` WHERE `+s.where+` ORDER BY `+s.column+`, id`, s.args...)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE `+s.table+` SET `+s.column+` = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return nil
}

func checkPriorities(ctx context.Context, tx *sql.Tx, fix bool, report *DoctorReport) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, priority FROM tasks WHERE priority < ? OR priority > ? ORDER BY id`, model.MinPriority, model.MaxPriority)
	if err != nil {
		return err
	}
	type bad struct {
		id string
		p  int
	}
	var found []bad
	for rows.Next() {
		var b bad
		if err := rows.Scan(&b.id, &b.p); err != nil {
			rows.Close()
			return err
		}
		found = append(found, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, b := range found {
		issue := DoctorIssue{
			Level:    DoctorIssueLevelWarn,
			Code:     "priority_out_of_range",
			Message:  fmt.Sprintf("priority %d outside %d..%d", b.p, model.MinPriority, model.MaxPriority),
			EntityID: b.id,
		}
		if fix {
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET priority = ? WHERE id = ?`, model.ClampPriority(b.p), b.id); err != nil {
				return err
			}
			issue.Fixed = true
		}
		report.Issues = append(report.Issues, issue)
	}
	return nil
}
