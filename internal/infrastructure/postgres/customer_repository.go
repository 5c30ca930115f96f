package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// customerSelect agrega los totales desde orders en una sola consulta (pedidos cancelados no suman).
const customerSelect = `
	SELECT c.id, c.user_id, c.name, c.email, c.phone, c.company, c.address, c.city, c.state,
	       c.postal_code, c.country, c.photo_url, c.notes,
	       COALESCE(t.total_spent, 0), COALESCE(t.total_orders, 0),
	       c.created_at, c.updated_at
	FROM customers c
	LEFT JOIN (
	    SELECT customer_id, SUM(total_amount) AS total_spent, COUNT(*) AS total_orders
	    FROM orders
	    WHERE status <> 'cancelled'
	    GROUP BY customer_id
	) t ON t.customer_id = c.id`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	defer observe("insert", "customers")()
	query := `
		INSERT INTO customers (id, user_id, name, email, phone, company, address, city, state,
		                       postal_code, country, photo_url, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.UserID), c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.State,
		c.PostalCode, c.Country, c.PhotoURL, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente con sus totales. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	defer observe("select", "customers")()
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List busca por nombre, email, teléfono o empresa y filtra por rango de gasto.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	defer observe("select", "customers")()
	var w whereBuilder
	w.search(f.Search, "c.name", "c.email", "c.phone", "c.company")
	if f.MinSpent != nil {
		w.add("COALESCE(t.total_spent, 0) >= ?", *f.MinSpent)
	}
	if f.MaxSpent != nil {
		w.add("COALESCE(t.total_spent, 0) < ?", *f.MaxSpent)
	}
	query := customerSelect + w.sql() + " ORDER BY c.name, c.id" + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto de un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	defer observe("update", "customers")()
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, company = $5, address = $6, city = $7,
		       state = $8, postal_code = $9, country = $10, photo_url = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.City,
		c.State, c.PostalCode, c.Country, c.PhotoURL, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. Con pedidos asociados devuelve ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete", "customers")()
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var userID *string
	if err := row.Scan(&c.ID, &userID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.City, &c.State,
		&c.PostalCode, &c.Country, &c.PhotoURL, &c.Notes, &c.TotalSpent, &c.TotalOrders,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UserID = derefString(userID)
	return &c, nil
}
