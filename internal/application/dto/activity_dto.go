package dto

import "time"

// CreateActivityRequest body para POST /api/leads/:id/activities.
type CreateActivityRequest struct {
	Type        string `json:"type" validate:"required,oneof=call email meeting note status_change other"`
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// UpdateActivityRequest edición explícita de una actividad.
type UpdateActivityRequest struct {
	Type        *string `json:"type" validate:"omitempty,oneof=call email meeting note status_change other"`
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

// ActivityResponse actividad en respuestas.
type ActivityResponse struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	UserID      string    `json:"user_id,omitempty"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
