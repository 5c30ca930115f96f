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

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

const activityColumns = `id, lead_id, user_id, type, title, description, created_at, updated_at`

// ActivityRepo historial de actividades por lead (usable con pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create inserta una actividad. Un lead inexistente devuelve ErrNotFound.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	defer observe("insert", "activities")()
	_, err := r.q.Exec(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.LeadID, nullIfEmpty(a.UserID), a.Type, a.Title, a.Description, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID obtiene una actividad.
func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	defer observe("select", "activities")()
	a, err := scanActivity(r.q.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

// ListByLead devuelve el historial del lead, más reciente primero.
func (r *ActivityRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Activity, error) {
	defer observe("select", "activities")()
	rows, err := r.q.Query(ctx, `SELECT `+activityColumns+` FROM activities WHERE lead_id = $1 ORDER BY created_at DESC, id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update edita tipo, título y descripción.
func (r *ActivityRepo) Update(ctx context.Context, a *entity.Activity) error {
	defer observe("update", "activities")()
	tag, err := r.q.Exec(ctx, `
		UPDATE activities SET type = $2, title = $3, description = $4, updated_at = $5 WHERE id = $1`,
		a.ID, a.Type, a.Title, a.Description, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una actividad.
func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete", "activities")()
	tag, err := r.q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	var userID *string
	if err := row.Scan(&a.ID, &a.LeadID, &userID, &a.Type, &a.Title, &a.Description,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.UserID = derefString(userID)
	return &a, nil
}
