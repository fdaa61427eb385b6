package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a placed order. Customer and line items are stored as the
// client sent them; only presence is validated.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer      bson.M             `bson:"customer" json:"customer"`
	Items         []bson.M           `bson:"items" json:"items"`
	CouponApplied string             `bson:"couponApplied,omitempty" json:"couponApplied,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
