package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a login record, created on first login and refreshed afterwards.
// The role field is advisory; nothing in the server enforces it.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	UID       string             `bson:"uid" json:"uid"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	LastLogin time.Time          `bson:"lastLogin" json:"lastLogin"`
}

// UpsertUserRequest is the login payload. Email is the upsert key.
type UpsertUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	UID   string `json:"uid" binding:"required"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}
