package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID    string             `json:"customer_id" validate:"required,uuid"`
	Status        string             `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus string             `json:"payment_status" validate:"omitempty,oneof=pending paid partial refunded"`
	Notes         string             `json:"notes" validate:"max=2000"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest línea del pedido. UnitPrice cero = precio actual del producto.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateOrderRequest cambios de cabecera (los ítems no se editan).
type UpdateOrderRequest struct {
	Status        *string `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=pending paid partial refunded"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// OrderListRequest filtros de GET /api/orders.
type OrderListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	Number        string              `json:"number"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderItemResponse línea del pedido en la respuesta.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderListResponse lista paginada de pedidos (sin líneas).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
