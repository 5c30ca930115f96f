package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name       string `json:"name" validate:"notblank,min=2,max=120"`
	Email      string `json:"email" validate:"omitempty,crm_email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,crm_phone"`
	Company    string `json:"company" validate:"max=120"`
	Address    string `json:"address" validate:"max=250"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Country    string `json:"country" validate:"max=100"`
	PhotoURL   string `json:"photo_url" validate:"omitempty,url"`
	Notes      string `json:"notes" validate:"max=2000"`
}

// UpdateCustomerRequest actualización parcial: solo se aplican los campos presentes.
type UpdateCustomerRequest struct {
	Name       *string `json:"name" validate:"omitnil,notblank,min=2,max=120"`
	Email      *string `json:"email" validate:"omitnil,opt_email,max=254"`
	Phone      *string `json:"phone" validate:"omitnil,opt_phone"`
	Company    *string `json:"company" validate:"omitempty,max=120"`
	Address    *string `json:"address" validate:"omitempty,max=250"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	State      *string `json:"state" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Country    *string `json:"country" validate:"omitempty,max=100"`
	PhotoURL   *string `json:"photo_url" validate:"omitnil,opt_url"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
}

// CustomerListRequest filtros de GET /api/customers.
type CustomerListRequest struct {
	PageRequest
	Segment string `query:"segment"`
}

// CustomerResponse cliente en respuestas, con totales y segmento derivados.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Company     string          `json:"company,omitempty"`
	Address     string          `json:"address,omitempty"`
	City        string          `json:"city,omitempty"`
	State       string          `json:"state,omitempty"`
	PostalCode  string          `json:"postal_code,omitempty"`
	Country     string          `json:"country,omitempty"`
	FullAddress string          `json:"full_address,omitempty"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	TotalOrders int             `json:"total_orders"`
	Segment     string          `json:"segment"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
