package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, user_id, name, email, phone, source, status, message, media_urls, created_at, updated_at`

// LeadRepo persistencia de leads en wp_leads (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create inserta un lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	defer observe("insert", "wp_leads")()
	_, err := r.q.Exec(ctx, `
		INSERT INTO wp_leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, nullIfEmpty(l.UserID), l.Name, l.Email, l.Phone, l.Source, l.Status, l.Message,
		nonNil(l.MediaURLs), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead. (nil, nil) si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	defer observe("select", "wp_leads")()
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM wp_leads WHERE id = $1`, id)
}

// GetByIDForUpdate lee el lead con FOR UPDATE: otra transacción que quiera cambiar su
// estado espera al commit y ve el valor nuevo. Solo tiene efecto dentro de una tx.
func (r *LeadRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	defer observe("select_for_update", "wp_leads")()
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM wp_leads WHERE id = $1 FOR UPDATE`, id)
}

func (r *LeadRepo) getOne(ctx context.Context, query, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// List busca por nombre, email, teléfono o mensaje; filtra por etapa y canal.
func (r *LeadRepo) List(ctx context.Context, f repository.LeadFilter) ([]*entity.Lead, error) {
	defer observe("select", "wp_leads")()
	var w whereBuilder
	w.search(f.Search, "name", "email", "phone", "message")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Source != "" {
		w.add("source = ?", f.Source)
	}
	query := `SELECT ` + leadColumns + ` FROM wp_leads` + w.sql() + ` ORDER BY created_at DESC, id` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto (no el estado).
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	defer observe("update", "wp_leads")()
	tag, err := r.q.Exec(ctx, `
		UPDATE wp_leads SET name = $2, email = $3, phone = $4, source = $5, message = $6,
		       media_urls = $7, updated_at = $8
		WHERE id = $1`,
		l.ID, l.Name, l.Email, l.Phone, l.Source, l.Message, nonNil(l.MediaURLs), l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste solo el estado.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	defer observe("update", "wp_leads")()
	tag, err := r.q.Exec(ctx, `UPDATE wp_leads SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el lead; actividades, notas y tareas caen en cascada.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete", "wp_leads")()
	tag, err := r.q.Exec(ctx, `DELETE FROM wp_leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	var userID *string
	if err := row.Scan(&l.ID, &userID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.Message, &l.MediaURLs, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.UserID = derefString(userID)
	l.MediaURLs = nonNil(l.MediaURLs)
	return &l, nil
}
