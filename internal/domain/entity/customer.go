package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/segment"
	"github.com/shopspring/decimal"
)

// Customer representa al comprador (antes duplicado como client/customer).
// TotalSpent y TotalOrders no se persisten: los calcula la consulta agregada sobre orders.
type Customer struct {
	ID          string
	UserID      string // usuario que lo registró
	Name        string
	Email       string
	Phone       string
	Company     string
	Address     string
	City        string
	State       string
	PostalCode  string
	Country     string
	PhotoURL    string
	Notes       string
	TotalSpent  decimal.Decimal
	TotalOrders int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullAddress une las partes no vacías de la dirección separadas por ", ".
func (c *Customer) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Address, c.City, c.State, c.PostalCode, c.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Segment deriva el segmento a partir del gasto acumulado.
func (c *Customer) Segment() segment.Segment {
	return segment.FromSpend(c.TotalSpent)
}
