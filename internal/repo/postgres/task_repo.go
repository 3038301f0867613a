package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amanops/fieldforce/internal/domain"
)

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, type, merchant_id, assigned_to_id, priority, status, due_date, created_at, outcome`

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	var outcome *string
	if t.Outcome != "" {
		s := string(t.Outcome)
		outcome = &s
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, type, merchant_id, assigned_to_id, priority, status, due_date, created_at, outcome)
         VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()), $9)`,
		t.ID,
		string(t.Type),
		t.MerchantID,
		t.AssignedToID,
		string(t.Priority),
		string(t.Status),
		t.DueDate,
		nullTime(t.CreatedAt),
		outcome,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY due_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, outcome domain.TaskOutcome) (*domain.Task, error) {
	var out *string
	if outcome != "" {
		s := string(outcome)
		out = &s
	}

	t, err := scanTask(r.db.QueryRowContext(ctx,
		`UPDATE tasks
         SET status = 'COMPLETED',
             outcome = $2
         WHERE id = $1
         RETURNING `+taskColumns,
		id, out,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("set task completed: %w", err)
	}
	return t, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t       domain.Task
		outcome sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.MerchantID,
		&t.AssignedToID,
		&t.Priority,
		&t.Status,
		&t.DueDate,
		&t.CreatedAt,
		&outcome,
	)
	if err != nil {
		return nil, err
	}
	t.Outcome = domain.TaskOutcome(outcome.String)
	return &t, nil
}
