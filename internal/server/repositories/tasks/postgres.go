// Package tasks provides the PostgreSQL-backed task store.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/dbx"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

const taskColumns = `id, task, to_char(due_date, 'YYYY-MM-DD'), user_id, completed, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (task, due_date, user_id, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.Description, task.DueDate, task.UserID, task.Completed, task.CreatedAt).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// ListForUser returns the user's tasks matching filter, newest first.
// The result is never nil.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64, filter models.TaskFilter) ([]*models.Task, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	switch filter.Status {
	case models.StatusOpen:
		conds = append(conds, "completed = FALSE")
	case models.StatusCompleted:
		conds = append(conds, "completed = TRUE")
	}

	if filter.DueOn != "" {
		args = append(args, filter.DueOn)
		conds = append(conds, fmt.Sprintf("due_date = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// SetCompletion sets the completion flag of a task owned by userID. Writing
// the current value again is a successful no-op; a missing, detached or
// foreign task is common.ErrorNotFound.
func (r *PostgresRepository) SetCompletion(ctx context.Context, id, userID int64, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = $1 WHERE id = $2 AND user_id = $3`, completed, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DetachOwner nulls the owner of every task belonging to userID and returns
// how many tasks were detached.
func (r *PostgresRepository) DetachOwner(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET user_id = NULL WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	task := &models.Task{}
	var owner sql.NullInt64
	if err := s.Scan(&task.ID, &task.Description, &task.DueDate, &owner, &task.Completed, &task.CreatedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		id := owner.Int64
		task.UserID = &id
	}
	return task, nil
}
