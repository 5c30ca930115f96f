package dto

import "time"

// CreateNoteRequest body para POST /api/leads/:id/notes.
type CreateNoteRequest struct {
	Content   string   `json:"content" validate:"notblank,max=10000"`
	IsPrivate bool     `json:"is_private"`
	MediaURLs []string `json:"media_urls" validate:"omitempty,max=10,dive,url"`
}

// UpdateNoteRequest actualización parcial de una nota.
type UpdateNoteRequest struct {
	Content   *string  `json:"content" validate:"omitnil,notblank,max=10000"`
	IsPrivate *bool    `json:"is_private"`
	MediaURLs []string `json:"media_urls" validate:"omitempty,max=10,dive,url"`
}

// NoteResponse nota en respuestas.
type NoteResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	AuthorID  string    `json:"author_id,omitempty"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	IsPrivate bool      `json:"is_private"`
	MediaURLs []string  `json:"media_urls"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
