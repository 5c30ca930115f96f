// Package memory implementa los puertos de repositorio en memoria, con transacciones
// por copia del estado. Lo usan las pruebas de casos de uso y de HTTP.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

type state struct {
	users      map[string]entity.User
	customers  map[string]entity.Customer
	products   map[string]entity.Product
	orders     map[string]entity.Order
	items      map[string][]entity.OrderItem // por order_id
	leads      map[string]entity.Lead
	activities map[string]entity.Activity
	notes      map[string]entity.Note
	tasks      map[string]entity.Task
}

func newState() *state {
	return &state{
		users:      map[string]entity.User{},
		customers:  map[string]entity.Customer{},
		products:   map[string]entity.Product{},
		orders:     map[string]entity.Order{},
		items:      map[string][]entity.OrderItem{},
		leads:      map[string]entity.Lead{},
		activities: map[string]entity.Activity{},
		notes:      map[string]entity.Note{},
		tasks:      map[string]entity.Task{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		v.Images = append([]string(nil), v.Images...)
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	for k, v := range s.leads {
		v.MediaURLs = append([]string(nil), v.MediaURLs...)
		c.leads[k] = v
	}
	for k, v := range s.activities {
		c.activities[k] = v
	}
	for k, v := range s.notes {
		v.MediaURLs = append([]string(nil), v.MediaURLs...)
		c.notes[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	return c
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state

	faultMu sync.Mutex
	faults  map[string]error

	callMu sync.Mutex
	calls  map[string]int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}, calls: map[string]int{}}
}

// Fail hace que la operación op (ej. "leads.UpdateStatus") devuelva err hasta Reset.
func (s *Store) Fail(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

// Reset quita los fallos inyectados y el conteo de llamadas.
func (s *Store) Reset() {
	s.faultMu.Lock()
	s.faults = map[string]error{}
	s.faultMu.Unlock()
	s.callMu.Lock()
	s.calls = map[string]int{}
	s.callMu.Unlock()
}

// Calls cuántas veces se invocó op.
func (s *Store) Calls(op string) int {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	return s.calls[op]
}

func (s *Store) enter(op string) error {
	s.callMu.Lock()
	s.calls[op]++
	s.callMu.Unlock()
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faults[op]
}

// view da acceso al estado: en tx usa la copia (el lock ya lo tiene el runner).
type view struct {
	s  *Store
	tx *state
}

func (v view) with(op string, fn func(st *state) error) error {
	if err := v.s.enter(op); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

// Repositorios fuera de transacción.

func (s *Store) Users() *UserRepo { return &UserRepo{view{s: s}} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{view{s: s}} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{view{s: s}} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{view{s: s}} }
func (s *Store) Leads() *LeadRepo { return &LeadRepo{view{s: s}} }
func (s *Store) Activities() *ActivityRepo { return &ActivityRepo{view{s: s}} }
func (s *Store) Notes() *NoteRepo { return &NoteRepo{view{s: s}} }
func (s *Store) Tasks() *TaskRepo { return &TaskRepo{view{s: s}} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{view{s: s}} }

// RunPipeline ejecuta fn sobre una copia y la confirma solo si fn no falla.
func (s *Store) RunPipeline(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	return s.inTx(func(v view) error {
		return fn(&LeadRepo{v}, &ActivityRepo{v})
	})
}

// RunSales igual que RunPipeline para pedidos y productos.
func (s *Store) RunSales(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(func(v view) error {
		return fn(&OrderRepo{v}, &ProductRepo{v})
	})
}

func (s *Store) inTx(fn func(v view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(view{s: s, tx: tx}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// ── Helpers de listado ──

func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func paginate[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func sortBy[T any](list []T, less func(a, b T) bool) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// ── Copias propias ──
// Los ids que llegan de la capa HTTP pueden apuntar a buffers que fasthttp reutiliza;
// ids y listas se clonan antes de guardarlos en el estado.

func ownUser(u entity.User) entity.User {
	u.ID = strings.Clone(u.ID)
	u.Email = strings.Clone(u.Email)
	return u
}

func ownCustomer(c entity.Customer) entity.Customer {
	c.ID, c.UserID = strings.Clone(c.ID), strings.Clone(c.UserID)
	return c
}

func ownProduct(p entity.Product) entity.Product {
	p.ID, p.UserID = strings.Clone(p.ID), strings.Clone(p.UserID)
	p.Images = cloneStrings(p.Images)
	return p
}

func ownOrder(o entity.Order) entity.Order {
	o.ID, o.UserID, o.CustomerID = strings.Clone(o.ID), strings.Clone(o.UserID), strings.Clone(o.CustomerID)
	o.Items = nil
	return o
}

func ownOrderItem(it entity.OrderItem) entity.OrderItem {
	it.ID, it.OrderID, it.ProductID = strings.Clone(it.ID), strings.Clone(it.OrderID), strings.Clone(it.ProductID)
	return it
}

func ownLead(l entity.Lead) entity.Lead {
	l.ID, l.UserID = strings.Clone(l.ID), strings.Clone(l.UserID)
	l.Status = strings.Clone(l.Status)
	l.MediaURLs = cloneStrings(l.MediaURLs)
	return l
}

func ownActivity(a entity.Activity) entity.Activity {
	a.ID, a.LeadID, a.UserID = strings.Clone(a.ID), strings.Clone(a.LeadID), strings.Clone(a.UserID)
	return a
}

func ownNote(n entity.Note) entity.Note {
	n.ID, n.LeadID, n.AuthorID = strings.Clone(n.ID), strings.Clone(n.LeadID), strings.Clone(n.AuthorID)
	n.MediaURLs = cloneStrings(n.MediaURLs)
	return n
}

func ownTask(t entity.Task) entity.Task {
	t.ID, t.LeadID, t.UserID = strings.Clone(t.ID), strings.Clone(t.LeadID), strings.Clone(t.UserID)
	return t
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.Clone(s)
	}
	return out
}
