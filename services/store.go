package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// OrderFilter narrows order listings and daily-index counting. Zero
// fields are ignored.
type OrderFilter struct {
	ClientID primitive.ObjectID
	BranchID primitive.ObjectID
	Status   string
	From     time.Time
	To       time.Time
}

// Store is the persistence surface the reconciliation services run
// against. Every write is atomic per document; nothing here is
// transactional across documents.
type Store interface {
	GetClient(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	AdjustClientDebt(ctx context.Context, id primitive.ObjectID, delta models.Money) error

	GetBranch(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)

	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	AdjustProductQuantity(ctx context.Context, id primitive.ObjectID, delta float64) error

	InsertOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	// CountOrdersUpTo counts non-deleted orders matching f created on
	// the same calendar day as upTo, with created_at <= upTo.
	CountOrdersUpTo(ctx context.Context, f OrderFilter, upTo time.Time) (int64, error)

	GetDebtor(ctx context.Context, id primitive.ObjectID) (*models.Debtor, error)
	// FindDebtorByOrder returns the debtor linked to the order, or
	// (nil, nil) when none exists.
	FindDebtorByOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Debtor, error)
	// FindOpenDebtor returns the non-paid, non-deleted debtor for
	// {client, branch}, or (nil, nil) when none exists.
	FindOpenDebtor(ctx context.Context, clientID, branchID primitive.ObjectID) (*models.Debtor, error)
	InsertDebtor(ctx context.Context, debtor *models.Debtor) error
	SaveDebtor(ctx context.Context, debtor *models.Debtor) error

	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	AdjustBalance(ctx context.Context, delta models.Money) error
}

// Notifier delivers outbound messages. Callers treat every send as
// fire-and-forget.
type Notifier interface {
	SendSMS(phone, message string) error
}
