package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Estados de pago del pedido.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusPartial  = "partial"
	PaymentStatusRefunded = "refunded"
)

// Order representa la cabecera de un pedido de un cliente.
type Order struct {
	ID            string
	UserID        string
	CustomerID    string
	Number        string
	Status        string
	PaymentStatus string
	TotalAmount   decimal.Decimal // suma de LineTotal de los ítems
	Notes         string
	Items         []*OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem representa una línea del pedido.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string // copia del nombre al momento de la venta
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // Quantity * UnitPrice
}

// IsValidOrderStatus indica si s es un estado de pedido reconocido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus indica si s es un estado de pago reconocido.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusRefunded:
		return true
	}
	return false
}
