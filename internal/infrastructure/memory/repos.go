package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.LeadRepository      = (*LeadRepo)(nil)
	_ repository.ActivityRepository  = (*ActivityRepo)(nil)
	_ repository.NoteRepository      = (*NoteRepo)(nil)
	_ repository.TaskRepository      = (*TaskRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// ── Usuarios ──

type UserRepo struct{ v view }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.v.with("users.Create", func(st *state) error {
		for _, x := range st.users {
			if strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *u
		cp.Email = strings.ToLower(cp.Email)
		cp = ownUser(cp)
		st.users[cp.ID] = cp
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.with("users.GetByID", func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.with("users.FindByEmail", func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ── Clientes ──

type CustomerRepo struct{ v view }

// withTotals replica el LEFT JOIN agregado: pedidos cancelados no suman.
func withTotals(st *state, c entity.Customer) entity.Customer {
	c.TotalSpent = decimal.Zero
	c.TotalOrders = 0
	for _, o := range st.orders {
		if o.CustomerID == c.ID && o.Status != entity.OrderStatusCancelled {
			c.TotalSpent = c.TotalSpent.Add(o.TotalAmount)
			c.TotalOrders++
		}
	}
	return c
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.v.with("customers.Create", func(st *state) error {
		if c.Email != "" {
			for _, x := range st.customers {
				if strings.EqualFold(x.Email, c.Email) {
					return domain.ErrDuplicate
				}
			}
		}
		cp := ownCustomer(*c)
		st.customers[cp.ID] = cp
		return nil
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.with("customers.GetByID", func(st *state) error {
		if c, ok := st.customers[id]; ok {
			c = withTotals(st, c)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.with("customers.List", func(st *state) error {
		all := make([]entity.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			c = withTotals(st, c)
			if !matches(f.Search, c.Name, c.Email, c.Phone, c.Company) {
				continue
			}
			if f.MinSpent != nil && c.TotalSpent.LessThan(*f.MinSpent) {
				continue
			}
			if f.MaxSpent != nil && !c.TotalSpent.LessThan(*f.MaxSpent) {
				continue
			}
			all = append(all, c)
		}
		sortBy(all, func(a, b entity.Customer) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		for _, c := range paginate(all, f.Limit, f.Offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	if out == nil && err == nil {
		out = []*entity.Customer{}
	}
	return out, err
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.v.with("customers.Update", func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownCustomer(*c)
		st.customers[cp.ID] = cp
		return nil
	})
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("customers.Delete", func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.orders {
			if o.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(st.customers, id)
		return nil
	})
}

// ── Productos ──

type ProductRepo struct{ v view }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.with("products.Create", func(st *state) error {
		if p.SKU != "" {
			for _, x := range st.products {
				if x.SKU == p.SKU {
					return domain.ErrDuplicate
				}
			}
		}
		cp := *p
		cp.Images = append([]string{}, p.Images...)
		cp = ownProduct(cp)
		st.products[cp.ID] = cp
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with("products.GetByID", func(st *state) error {
		if p, ok := st.products[id]; ok {
			p.Images = append([]string{}, p.Images...)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	out := []*entity.Product{}
	err := r.v.with("products.List", func(st *state) error {
		all := make([]entity.Product, 0, len(st.products))
		for _, p := range st.products {
			if !matches(f.Search, p.Name, p.SKU, p.Brand, p.Category) {
				continue
			}
			if f.Active != nil && p.Active != *f.Active {
				continue
			}
			all = append(all, p)
		}
		sortBy(all, func(a, b entity.Product) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		for _, p := range paginate(all, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.v.with("products.Update", func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if p.SKU != "" {
			for id, x := range st.products {
				if id != p.ID && x.SKU == p.SKU {
					return domain.ErrDuplicate
				}
			}
		}
		cp := ownProduct(*p)
		st.products[cp.ID] = cp
		return nil
	})
}

func (r *ProductRepo) AdjustStock(ctx context.Context, productID string, delta int) error {
	return r.v.with("products.AdjustStock", func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		p.Stock += delta
		p.UpdatedAt = entity.Now()
		st.products[p.ID] = p
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("products.Delete", func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, items := range st.items {
			for _, it := range items {
				if it.ProductID == id {
					return domain.ErrConflict
				}
			}
		}
		delete(st.products, id)
		return nil
	})
}

// ── Pedidos ──

type OrderRepo struct{ v view }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.v.with("orders.Create", func(st *state) error {
		if _, ok := st.customers[o.CustomerID]; !ok {
			return domain.ErrNotFound
		}
		for _, x := range st.orders {
			if x.Number == o.Number {
				return domain.ErrDuplicate
			}
		}
		cp := *o
		cp.Items = nil
		cp = ownOrder(cp)
		st.orders[cp.ID] = cp
		return nil
	})
}

func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	return r.v.with("orders.CreateItem", func(st *state) error {
		if _, ok := st.orders[it.OrderID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.products[it.ProductID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownOrderItem(*it)
		st.items[cp.OrderID] = append(st.items[cp.OrderID], cp)
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.with("orders.GetByID", func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	out := []*entity.OrderItem{}
	err := r.v.with("orders.ListItems", func(st *state) error {
		for _, it := range st.items[orderID] {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	out := []*entity.Order{}
	err := r.v.with("orders.List", func(st *state) error {
		all := make([]entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			all = append(all, o)
		}
		sortBy(all, func(a, b entity.Order) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		for _, o := range paginate(all, f.Limit, f.Offset) {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	return r.v.with("orders.Update", func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status, cur.PaymentStatus, cur.Notes, cur.UpdatedAt = o.Status, o.PaymentStatus, o.Notes, o.UpdatedAt
		st.orders[cur.ID] = ownOrder(cur)
		return nil
	})
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("orders.Delete", func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.orders, id)
		delete(st.items, id)
		return nil
	})
}

// ── Leads ──

type LeadRepo struct{ v view }

func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	return r.v.with("leads.Create", func(st *state) error {
		cp := *l
		cp.MediaURLs = append([]string{}, l.MediaURLs...)
		cp = ownLead(cp)
		st.leads[cp.ID] = cp
		return nil
	})
}

func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	var out *entity.Lead
	err := r.v.with("leads.GetByID", func(st *state) error {
		if l, ok := st.leads[id]; ok {
			l.MediaURLs = append([]string{}, l.MediaURLs...)
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LeadRepo) List(ctx context.Context, f repository.LeadFilter) ([]*entity.Lead, error) {
	out := []*entity.Lead{}
	err := r.v.with("leads.List", func(st *state) error {
		all := make([]entity.Lead, 0, len(st.leads))
		for _, l := range st.leads {
			if !matches(f.Search, l.Name, l.Email, l.Phone, l.Message) {
				continue
			}
			if f.Status != "" && l.Status != f.Status {
				continue
			}
			if f.Source != "" && l.Source != f.Source {
				continue
			}
			all = append(all, l)
		}
		sortBy(all, func(a, b entity.Lead) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		for _, l := range paginate(all, f.Limit, f.Offset) {
			l := l
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	return r.v.with("leads.Update", func(st *state) error {
		cur, ok := st.leads[l.ID]
		if !ok {
			return domain.ErrNotFound
		}
		status := cur.Status
		cur = *l
		cur.Status = status
		cur = ownLead(cur)
		st.leads[cur.ID] = cur
		return nil
	})
}

// GetByIDForUpdate igual que GetByID: en memoria la transacción ya tiene el store en exclusiva.
func (r *LeadRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	var out *entity.Lead
	err := r.v.with("leads.GetByIDForUpdate", func(st *state) error {
		if l, ok := st.leads[id]; ok {
			l.MediaURLs = cloneStrings(l.MediaURLs)
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LeadRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	return r.v.with("leads.UpdateStatus", func(st *state) error {
		l, ok := st.leads[id]
		if !ok {
			return domain.ErrNotFound
		}
		l.Status = status
		l.UpdatedAt = updatedAt
		l = ownLead(l)
		st.leads[l.ID] = l
		return nil
	})
}

func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("leads.Delete", func(st *state) error {
		if _, ok := st.leads[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.leads, id)
		for k, a := range st.activities {
			if a.LeadID == id {
				delete(st.activities, k)
			}
		}
		for k, n := range st.notes {
			if n.LeadID == id {
				delete(st.notes, k)
			}
		}
		for k, t := range st.tasks {
			if t.LeadID == id {
				delete(st.tasks, k)
			}
		}
		return nil
	})
}

// ── Actividades ──

type ActivityRepo struct{ v view }

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	return r.v.with("activities.Create", func(st *state) error {
		if _, ok := st.leads[a.LeadID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownActivity(*a)
		st.activities[cp.ID] = cp
		return nil
	})
}

func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	var out *entity.Activity
	err := r.v.with("activities.GetByID", func(st *state) error {
		if a, ok := st.activities[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *ActivityRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Activity, error) {
	out := []*entity.Activity{}
	err := r.v.with("activities.ListByLead", func(st *state) error {
		all := make([]entity.Activity, 0)
		for _, a := range st.activities {
			if a.LeadID == leadID {
				all = append(all, a)
			}
		}
		sortBy(all, func(a, b entity.Activity) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		for _, a := range all {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	return out, err
}

func (r *ActivityRepo) Update(ctx context.Context, a *entity.Activity) error {
	return r.v.with("activities.Update", func(st *state) error {
		if _, ok := st.activities[a.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownActivity(*a)
		st.activities[cp.ID] = cp
		return nil
	})
}

func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("activities.Delete", func(st *state) error {
		if _, ok := st.activities[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.activities, id)
		return nil
	})
}

// ── Notas ──

type NoteRepo struct{ v view }

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	return r.v.with("notes.Create", func(st *state) error {
		if _, ok := st.leads[n.LeadID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownNote(*n)
		st.notes[cp.ID] = cp
		return nil
	})
}

func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	var out *entity.Note
	err := r.v.with("notes.GetByID", func(st *state) error {
		if n, ok := st.notes[id]; ok {
			out = &n
		}
		return nil
	})
	return out, err
}

func (r *NoteRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Note, error) {
	out := []*entity.Note{}
	err := r.v.with("notes.ListByLead", func(st *state) error {
		all := make([]entity.Note, 0)
		for _, n := range st.notes {
			if n.LeadID == leadID {
				all = append(all, n)
			}
		}
		sortBy(all, func(a, b entity.Note) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		for _, n := range all {
			n := n
			out = append(out, &n)
		}
		return nil
	})
	return out, err
}

func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	return r.v.with("notes.Update", func(st *state) error {
		if _, ok := st.notes[n.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownNote(*n)
		st.notes[cp.ID] = cp
		return nil
	})
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("notes.Delete", func(st *state) error {
		if _, ok := st.notes[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.notes, id)
		return nil
	})
}

// ── Tareas ──

type TaskRepo struct{ v view }

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	return r.v.with("tasks.Create", func(st *state) error {
		if _, ok := st.leads[t.LeadID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownTask(*t)
		st.tasks[cp.ID] = cp
		return nil
	})
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var out *entity.Task
	err := r.v.with("tasks.GetByID", func(st *state) error {
		if t, ok := st.tasks[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TaskRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error) {
	out := []*entity.Task{}
	err := r.v.with("tasks.ListByLead", func(st *state) error {
		all := make([]entity.Task, 0)
		for _, t := range st.tasks {
			if t.LeadID == leadID {
				all = append(all, t)
			}
		}
		sortBy(all, func(a, b entity.Task) bool {
			switch {
			case a.DueDate == nil && b.DueDate != nil:
				return false
			case a.DueDate != nil && b.DueDate == nil:
				return true
			case a.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
				return a.DueDate.Before(*b.DueDate)
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
		for _, t := range all {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	return r.v.with("tasks.Update", func(st *state) error {
		if _, ok := st.tasks[t.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := ownTask(*t)
		st.tasks[cp.ID] = cp
		return nil
	})
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	return r.v.with("tasks.Delete", func(st *state) error {
		if _, ok := st.tasks[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.tasks, id)
		return nil
	})
}

// ── Analítica ──

type AnalyticsRepo struct{ v view }

func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (repository.SalesMetrics, error) {
	var m repository.SalesMetrics
	err := r.v.with("analytics.GetSalesMetrics", func(st *state) error {
		for _, o := range st.orders {
			if o.Status == entity.OrderStatusCancelled || o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
				continue
			}
			m.Revenue = m.Revenue.Add(o.TotalAmount)
			m.OrderCount++
		}
		return nil
	})
	return m, err
}

func (r *AnalyticsRepo) GetCustomerSpend(ctx context.Context) ([]decimal.Decimal, error) {
	out := []decimal.Decimal{}
	err := r.v.with("analytics.GetCustomerSpend", func(st *state) error {
		for _, c := range st.customers {
			out = append(out, withTotals(st, c).TotalSpent)
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) CountLeadsByStatus(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := r.v.with("analytics.CountLeadsByStatus", func(st *state) error {
		for _, l := range st.leads {
			out[l.Status]++
		}
		return nil
	})
	return out, err
}
