package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductImages límite de imágenes por producto.
const MaxProductImages = 5

// Product representa un ítem del catálogo.
type Product struct {
	ID          string
	UserID      string
	SKU         string // opcional; único cuando se informa
	Name        string
	Description string
	Brand       string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Images      []string // URLs, máximo MaxProductImages
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
