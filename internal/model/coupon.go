package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon represents a discount coupon assigned to a user. Broadcast
// assignment stores one document per user, all sharing a code.
type Coupon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code        string             `bson:"code" json:"code"`
	Discount    float64            `bson:"discount" json:"discount"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UserEmail   string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	Used        bool               `bson:"used" json:"used"`
	UsedAt      *time.Time         `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	ExpiryDate  *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CouponCode is a row in the code registry collection. The unique index on
// code makes coupon creation claim its code atomically.
type CouponCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateCouponRequest represents the request to create a coupon, either for
// a single user or broadcast to every known user.
type CreateCouponRequest struct {
	Code        string     `json:"code" binding:"required"`
	Discount    *float64   `json:"discount" binding:"required"`
	UserEmail   string     `json:"userEmail"`
	ForAll      bool       `json:"forAll"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	Description string     `json:"description"`
}

// VerifyCouponRequest represents the pre-checkout redeemability check.
type VerifyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyCouponResponse is the answer to a verification request. No mutation
// happens during verification.
type VerifyCouponResponse struct {
	Valid          bool     `json:"valid"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	Message        string   `json:"message,omitempty"`
}
