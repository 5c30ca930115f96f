package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// User representa un usuario del CRM.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, sales
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
