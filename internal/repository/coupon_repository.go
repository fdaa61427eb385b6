package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
)

// CouponRepository defines the interface for coupon data operations
type CouponRepository interface {
	// ReserveCode claims a code in the registry. Returns
	// ErrCouponCodeExists if any coupon was ever created with this code.
	ReserveCode(ctx context.Context, code string) error

	// ReleaseCode frees a registry entry so the code can be reissued.
	ReleaseCode(ctx context.Context, code string) error

	// Create inserts a single coupon document
	Create(ctx context.Context, coupon *model.Coupon) error

	// CreateMany inserts one coupon document per target user
	CreateMany(ctx context.Context, coupons []*model.Coupon) error

	// FindUnusedByCode returns an unused coupon carrying the code, or
	// ErrCouponNotFound if none remains
	FindUnusedByCode(ctx context.Context, code string) (*model.Coupon, error)

	// CountByCode counts all coupon documents sharing a code, used or not
	CountByCode(ctx context.Context, code string) (int64, error)

	// Redeem atomically flips exactly one unused coupon with the code to
	// used. Returns ErrCouponAlreadyUsed if every document with the code is
	// already used, ErrCouponNotFound if the code does not exist.
	Redeem(ctx context.Context, code string, at time.Time) error

	// List returns every coupon document
	List(ctx context.Context) ([]*model.Coupon, error)

	// Delete removes a coupon by id and returns the removed document
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error)
}
