package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Debtor statuses. "overdue" is set only by the scheduled reminder job
// when the due date passes, never by the payment path.
const (
	DebtorStatusPending = "pending"
	DebtorStatusPartial = "partial"
	DebtorStatusPaid    = "paid"
	DebtorStatusOverdue = "overdue"
)

// Debtor is one client's open debt ledger record for a branch. At most
// one non-paid record exists per {client, branch}; new debt orders are
// merged onto it. OrderID links back to the originating order and is
// zero for debts entered directly.
type Debtor struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClientID      primitive.ObjectID `bson:"client" json:"client"`
	BranchID      primitive.ObjectID `bson:"branch" json:"branch"`
	OrderID       primitive.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	TotalDebt     Money              `bson:"total_debt" json:"total_debt"`
	PaidAmount    Money              `bson:"paid_amount" json:"paid_amount"`
	RemainingDebt Money              `bson:"remaining_debt" json:"remaining_debt"`
	Status        string             `bson:"status" json:"status"`
	DueDate       time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	LastPayment   time.Time          `bson:"last_payment,omitempty" json:"last_payment,omitempty"`
	NextPayment   time.Time          `bson:"next_payment,omitempty" json:"next_payment,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsDeleted     bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateDebtorInput struct {
	ClientID string    `json:"client" binding:"required"`
	BranchID string    `json:"branch" binding:"required"`
	Amount   Money     `json:"amount"`
	DueDate  time.Time `json:"due_date"`
	Notes    string    `json:"notes"`
}

type DebtPaymentInput struct {
	Amount      Money      `json:"amount"`
	PaymentType string     `json:"payment_type"`
	NextPayment *time.Time `json:"next_payment"`
	Description string     `json:"description"`
}
