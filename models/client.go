package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client.Debt is an incrementally maintained cache of the client's
// outstanding debt across open debtor records. It is written only by
// the debt reconciliation code, never set directly from a request.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BranchID  primitive.ObjectID `bson:"branch" json:"branch"`
	FullName  string             `bson:"full_name" json:"full_name" binding:"required"`
	Phone     string             `bson:"phone" json:"phone" binding:"required"`
	Debt      Money              `bson:"debt" json:"debt"`
	IsVIP     bool               `bson:"is_vip" json:"is_vip"`
	BirthDate string             `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsDeleted bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type UpdateClient struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	IsVIP     *bool   `json:"is_vip"`
	BirthDate *string `json:"birth_date"`
	Notes     *string `json:"notes"`
}

type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClientID    primitive.ObjectID `bson:"client" json:"client"`
	PlateNumber string             `bson:"plate_number" json:"plate_number" binding:"required"`
	Make        string             `bson:"make" json:"make"`
	Model       string             `bson:"model" json:"model"`
	Year        int                `bson:"year,omitempty" json:"year,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type UpdateVehicle struct {
	PlateNumber *string `json:"plate_number"`
	Make        *string `json:"make"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"`
	Notes       *string `json:"notes"`
}

type Branch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsDeleted bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
