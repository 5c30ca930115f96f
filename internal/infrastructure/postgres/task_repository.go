package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, lead_id, user_id, title, description, priority, status, due_date, completed_at, created_at, updated_at`

// TaskRepo tareas de seguimiento por lead (usable con pool o tx).
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	defer observe("insert", "tasks")()
	_, err := r.q.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.LeadID, nullIfEmpty(t.UserID), t.Title, t.Description, t.Priority, t.Status,
		t.DueDate, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	defer observe("select", "tasks")()
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListByLead ordena por vencimiento (sin fecha al final).
func (r *TaskRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error) {
	defer observe("select", "tasks")()
	rows, err := r.q.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE lead_id = $1
		ORDER BY due_date ASC NULLS LAST, created_at DESC, id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	defer observe("update", "tasks")()
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks SET title = $2, description = $3, priority = $4, status = $5, due_date = $6,
		       completed_at = $7, updated_at = $8
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Priority, t.Status, t.DueDate, t.CompletedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete", "tasks")()
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	var userID *string
	if err := row.Scan(&t.ID, &t.LeadID, &userID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.UserID = derefString(userID)
	return &t, nil
}
