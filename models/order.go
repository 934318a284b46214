package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment types.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentDebt = "debt"
)

// OrderItem is one product line inside an order. Cost price and
// currency are snapshotted from the product at order time so later
// price edits do not change recorded profit.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	CostPrice float64            `bson:"cost_price" json:"cost_price"`
	Currency  string             `bson:"currency" json:"currency"`
	Profit    float64            `bson:"profit" json:"profit"`
}

type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClientID     primitive.ObjectID `bson:"client" json:"client"`
	BranchID     primitive.ObjectID `bson:"branch" json:"branch"`
	VehicleID    primitive.ObjectID `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
	Items        []OrderItem        `bson:"products" json:"products"`
	TotalAmount  Money              `bson:"total_amount" json:"total_amount"`
	PaidAmount   Money              `bson:"paid_amount" json:"paid_amount"`
	DebtAmount   Money              `bson:"debt_amount" json:"debt_amount"`
	ProfitAmount Money              `bson:"profit_amount" json:"profit_amount"`
	PaymentType  string             `bson:"payment_type" json:"payment_type"`
	Status       string             `bson:"status" json:"status"`
	DateReturned time.Time          `bson:"date_returned,omitempty" json:"date_returned,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy    string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ViewToken    string             `bson:"view_token,omitempty" json:"view_token,omitempty"`
	IsDeleted    bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`

	// DailyIndex is computed when listing orders, never stored.
	DailyIndex int64 `bson:"-" json:"daily_index,omitempty"`
}

// OrderItemInput is a line item as submitted by the client: product
// reference, quantity and unit sale price. Name, cost price and
// currency are resolved from the product.
type OrderItemInput struct {
	ProductID string  `json:"product" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Price     float64 `json:"price"`
}

type CreateOrderInput struct {
	ClientID     string           `json:"client" binding:"required"`
	BranchID     string           `json:"branch" binding:"required"`
	VehicleID    string           `json:"vehicle"`
	Products     []OrderItemInput `json:"products" binding:"required"`
	TotalAmount  Money            `json:"total_amount"`
	PaidAmount   Money            `json:"paid_amount"`
	DebtAmount   Money            `json:"debt_amount"`
	PaymentType  string           `json:"payment_type" binding:"required"`
	Status       string           `json:"status"`
	DateReturned time.Time        `json:"date_returned"`
	Description  string           `json:"description"`
}

// UpdateOrderInput is the allow-listed patch for an order. Fields not
// listed here can never be written through the update endpoint.
type UpdateOrderInput struct {
	Products     []OrderItemInput `json:"products"`
	TotalAmount  *Money           `json:"total_amount"`
	PaidAmount   *Money           `json:"paid_amount"`
	DebtAmount   *Money           `json:"debt_amount"`
	PaymentType  *string          `json:"payment_type"`
	Status       *string          `json:"status"`
	DateReturned *time.Time       `json:"date_returned"`
	Description  *string          `json:"description"`
}
