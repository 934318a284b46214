package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types.
const (
	TxCashIn      = "cash-in"
	TxCashOut     = "cash-out"
	TxOrder       = "order"
	TxDebtCreated = "debt-created"
	TxDebtPayment = "debt-payment"
	TxService     = "service"
)

// Transaction is an append-only financial event. Records are never
// edited; corrections are written as new transactions, and removal is a
// soft-delete mark only.
type Transaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type         string             `bson:"type" json:"type"`
	Amount       Money              `bson:"amount" json:"amount"`
	PaymentType  string             `bson:"payment_type,omitempty" json:"payment_type,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ClientID     primitive.ObjectID `bson:"client,omitempty" json:"client,omitempty"`
	BranchID     primitive.ObjectID `bson:"branch,omitempty" json:"branch,omitempty"`
	RelatedModel string             `bson:"related_model,omitempty" json:"related_model,omitempty"`
	RelatedID    primitive.ObjectID `bson:"related_id,omitempty" json:"related_id,omitempty"`
	CreatedBy    string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	IsDeleted    bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type CreateTransactionInput struct {
	Type        string `json:"type" binding:"required"`
	Amount      Money  `json:"amount"`
	PaymentType string `json:"payment_type"`
	Description string `json:"description"`
	ClientID    string `json:"client"`
	BranchID    string `json:"branch"`
}

// Balance is the singleton running cash total: the signed sum of all
// non-deleted cash-affecting transactions, maintained incrementally.
type Balance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Cash      Money              `bson:"cash" json:"cash"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
