package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// memStore is an in-memory Store for exercising the reconciliation
// services without a database.
type memStore struct {
	clients      map[primitive.ObjectID]*models.Client
	branches     map[primitive.ObjectID]*models.Branch
	products     map[primitive.ObjectID]*models.Product
	orders       map[primitive.ObjectID]*models.Order
	debtors      map[primitive.ObjectID]*models.Debtor
	transactions []*models.Transaction
	balance      models.Money
}

func newMemStore() *memStore {
	return &memStore{
		clients:  make(map[primitive.ObjectID]*models.Client),
		branches: make(map[primitive.ObjectID]*models.Branch),
		products: make(map[primitive.ObjectID]*models.Product),
		orders:   make(map[primitive.ObjectID]*models.Order),
		debtors:  make(map[primitive.ObjectID]*models.Debtor),
	}
}

func (m *memStore) addClient(c *models.Client) *models.Client {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.clients[c.ID] = c
	return c
}

func (m *memStore) addBranch(b *models.Branch) *models.Branch {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.branches[b.ID] = b
	return b
}

func (m *memStore) addProduct(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = p
	return p
}

func (m *memStore) transactionsOfType(txType string) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range m.transactions {
		if tx.Type == txType && !tx.IsDeleted {
			out = append(out, tx)
		}
	}
	return out
}

func (m *memStore) GetClient(_ context.Context, id primitive.ObjectID) (*models.Client, error) {
	c, ok := m.clients[id]
	if !ok || c.IsDeleted {
		return nil, &NotFoundError{Entity: "client"}
	}
	return c, nil
}

func (m *memStore) AdjustClientDebt(_ context.Context, id primitive.ObjectID, delta models.Money) error {
	c, ok := m.clients[id]
	if !ok {
		return &NotFoundError{Entity: "client"}
	}
	c.Debt = c.Debt.Add(delta)
	return nil
}

func (m *memStore) GetBranch(_ context.Context, id primitive.ObjectID) (*models.Branch, error) {
	b, ok := m.branches[id]
	if !ok || b.IsDeleted {
		return nil, &NotFoundError{Entity: "branch"}
	}
	return b, nil
}

func (m *memStore) GetProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok || p.IsDeleted {
		return nil, &NotFoundError{Entity: "product"}
	}
	return p, nil
}

func (m *memStore) AdjustProductQuantity(_ context.Context, id primitive.ObjectID, delta float64) error {
	p, ok := m.products[id]
	if !ok {
		return &NotFoundError{Entity: "product"}
	}
	p.Quantity += delta
	return nil
}

func (m *memStore) InsertOrder(_ context.Context, order *models.Order) error {
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *memStore) GetOrder(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, &NotFoundError{Entity: "order"}
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) SaveOrder(_ context.Context, order *models.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return &NotFoundError{Entity: "order"}
	}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func matchesOrderFilter(o *models.Order, f OrderFilter) bool {
	if o.IsDeleted {
		return false
	}
	if !f.ClientID.IsZero() && o.ClientID != f.ClientID {
		return false
	}
	if !f.BranchID.IsZero() && o.BranchID != f.BranchID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	return true
}

func (m *memStore) ListOrders(_ context.Context, f OrderFilter) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if matchesOrderFilter(o, f) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) CountOrdersUpTo(_ context.Context, f OrderFilter, upTo time.Time) (int64, error) {
	dayStart := time.Date(upTo.Year(), upTo.Month(), upTo.Day(), 0, 0, 0, 0, upTo.Location())
	var n int64
	for _, o := range m.orders {
		if !matchesOrderFilter(o, f) {
			continue
		}
		if o.CreatedAt.Before(dayStart) || o.CreatedAt.After(upTo) {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memStore) GetDebtor(_ context.Context, id primitive.ObjectID) (*models.Debtor, error) {
	d, ok := m.debtors[id]
	if !ok || d.IsDeleted {
		return nil, &NotFoundError{Entity: "debtor"}
	}
	cp := *d
	return &cp, nil
}

func (m *memStore) FindDebtorByOrder(_ context.Context, orderID primitive.ObjectID) (*models.Debtor, error) {
	for _, d := range m.debtors {
		if !d.IsDeleted && d.OrderID == orderID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOpenDebtor(_ context.Context, clientID, branchID primitive.ObjectID) (*models.Debtor, error) {
	for _, d := range m.debtors {
		if d.IsDeleted || d.Status == models.DebtorStatusPaid {
			continue
		}
		if d.ClientID == clientID && d.BranchID == branchID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertDebtor(_ context.Context, debtor *models.Debtor) error {
	cp := *debtor
	m.debtors[debtor.ID] = &cp
	return nil
}

func (m *memStore) SaveDebtor(_ context.Context, debtor *models.Debtor) error {
	if _, ok := m.debtors[debtor.ID]; !ok {
		return &NotFoundError{Entity: "debtor"}
	}
	cp := *debtor
	m.debtors[debtor.ID] = &cp
	return nil
}

func (m *memStore) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	cp := *tx
	m.transactions = append(m.transactions, &cp)
	return nil
}

func (m *memStore) AdjustBalance(_ context.Context, delta models.Money) error {
	m.balance = m.balance.Add(delta)
	return nil
}
