package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product currencies.
const (
	CurrencyUSD = "usd"
	CurrencyUZS = "uzs"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BranchID    primitive.ObjectID `bson:"branch" json:"branch"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Unit        string             `bson:"unit" json:"unit"`
	Barcode     string             `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	MinQuantity float64            `bson:"min_quantity" json:"min_quantity"`
	CostPrice   float64            `bson:"cost_price" json:"cost_price"`
	SalePrice   float64            `bson:"sale_price" json:"sale_price"`
	Currency    string             `bson:"currency" json:"currency"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type UpdateProduct struct {
	Name        *string  `json:"name"`
	Unit        *string  `json:"unit"`
	Barcode     *string  `json:"barcode"`
	Quantity    *float64 `json:"quantity"`
	MinQuantity *float64 `json:"min_quantity"`
	CostPrice   *float64 `json:"cost_price"`
	SalePrice   *float64 `json:"sale_price"`
	Currency    *string  `json:"currency"`
}
