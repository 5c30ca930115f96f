package dto

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/pipeline"
)

// CreateLeadRequest body para POST /api/leads. Status vacío = new.
type CreateLeadRequest struct {
	Name      string   `json:"name" validate:"notblank,min=2,max=120"`
	Email     string   `json:"email" validate:"omitempty,crm_email,max=254"`
	Phone     string   `json:"phone" validate:"omitempty,crm_phone"`
	Source    string   `json:"source" validate:"omitempty,oneof=website referral social_media email phone event advertising other"`
	Status    string   `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Message   string   `json:"message" validate:"max=5000"`
	MediaURLs []string `json:"media_urls" validate:"omitempty,max=10,dive,url"`
}

// UpdateLeadRequest actualización parcial de datos de contacto.
// El estado se cambia solo por PATCH /api/leads/:id/status para registrar la actividad.
type UpdateLeadRequest struct {
	Name      *string  `json:"name" validate:"omitnil,notblank,min=2,max=120"`
	Email     *string  `json:"email" validate:"omitnil,opt_email,max=254"`
	Phone     *string  `json:"phone" validate:"omitnil,opt_phone"`
	Source    *string  `json:"source" validate:"omitempty,oneof=website referral social_media email phone event advertising other"`
	Message   *string  `json:"message" validate:"omitempty,max=5000"`
	MediaURLs []string `json:"media_urls" validate:"omitempty,max=10,dive,url"`
}

// LeadListRequest filtros de GET /api/leads.
type LeadListRequest struct {
	PageRequest
	Status string `query:"status"`
	Source string `query:"source"`
}

// LeadResponse lead en respuestas.
type LeadResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Source      string    `json:"source,omitempty"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Message     string    `json:"message,omitempty"`
	MediaURLs   []string  `json:"media_urls"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeadListResponse lista paginada de leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ChangeStatusRequest body para PATCH /api/leads/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatusResponse resultado del cambio. Changed=false cuando el estado ya era el pedido.
type ChangeStatusResponse struct {
	Lead     LeadResponse      `json:"lead"`
	Changed  bool              `json:"changed"`
	Activity *ActivityResponse `json:"activity,omitempty"`
}

// PipelineProgressResponse vista de progreso de un lead.
type PipelineProgressResponse struct {
	LeadID  string                  `json:"lead_id"`
	Current string                  `json:"current"`
	Steps   []pipeline.StepProgress `json:"steps"`
}

// StagesResponse catálogo de etapas.
type StagesResponse struct {
	Stages []pipeline.Stage `json:"stages"`
}
