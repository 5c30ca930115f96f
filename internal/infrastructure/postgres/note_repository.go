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

var _ repository.NoteRepository = (*NoteRepo)(nil)

const noteColumns = `id, lead_id, author_id, author, content, is_private, media_urls, created_at, updated_at`

// NoteRepo notas por lead (usable con pool o tx).
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	defer observe("insert", "notes")()
	_, err := r.q.Exec(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.LeadID, nullIfEmpty(n.AuthorID), n.Author, n.Content, n.IsPrivate,
		nonNil(n.MediaURLs), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	defer observe("select", "notes")()
	n, err := scanNote(r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Note, error) {
	defer observe("select", "notes")()
	rows, err := r.q.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE lead_id = $1 ORDER BY created_at DESC, id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	defer observe("update", "notes")()
	tag, err := r.q.Exec(ctx, `
		UPDATE notes SET content = $2, is_private = $3, media_urls = $4, updated_at = $5 WHERE id = $1`,
		n.ID, n.Content, n.IsPrivate, nonNil(n.MediaURLs), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete", "notes")()
	tag, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	var authorID *string
	if err := row.Scan(&n.ID, &n.LeadID, &authorID, &n.Author, &n.Content, &n.IsPrivate,
		&n.MediaURLs, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.AuthorID = derefString(authorID)
	n.MediaURLs = nonNil(n.MediaURLs)
	return &n, nil
}
