package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BranchID  primitive.ObjectID `bson:"branch,omitempty" json:"branch,omitempty"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	IsDeleted bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type SMSLog struct {
	Phone          string    `bson:"phone"`
	TotalSent      int       `bson:"total_sent"`
	FailedAttempts int       `bson:"failed_attempts"`
	LastSent       time.Time `bson:"last_sent"`
	SMSLastMinute  int       `bson:"sms_last_minute"`
}
