package repository

import "github.com/shopspring/decimal"

// ListFilter filtros comunes de listado. Search vacío (o solo espacios) no filtra.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// CustomerFilter filtros del listado de clientes.
// MinSpent/MaxSpent acotan TotalSpent en [MinSpent, MaxSpent) (traducción del segmento).
type CustomerFilter struct {
	ListFilter
	MinSpent *decimal.Decimal
	MaxSpent *decimal.Decimal
}

// ProductFilter filtros del catálogo.
type ProductFilter struct {
	ListFilter
	Active *bool
}

// LeadFilter filtros del listado de leads.
type LeadFilter struct {
	ListFilter
	Status string
	Source string
}

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}
