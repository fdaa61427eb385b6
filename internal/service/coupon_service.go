package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
	"robe-backend/internal/repository"
	apperrors "robe-backend/pkg/errors"
)

// CouponService handles coupon assignment, verification and removal
type CouponService struct {
	coupons repository.CouponRepository
	users   repository.UserRepository
}

// NewCouponService creates a new coupon service
func NewCouponService(coupons repository.CouponRepository, users repository.UserRepository) *CouponService {
	return &CouponService{
		coupons: coupons,
		users:   users,
	}
}

// Create assigns a coupon to one user, or to every known user when ForAll is
// set. The code is reserved in the registry first, so a duplicate code fails
// with ErrCouponCodeExists before any coupon document is written.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) ([]*model.Coupon, error) {
	if !req.ForAll && req.UserEmail == "" {
		return nil, apperrors.ErrMissingUserEmail
	}

	if err := s.coupons.ReserveCode(ctx, req.Code); err != nil {
		return nil, err
	}

	now := time.Now()
	if !req.ForAll {
		coupon := s.newCoupon(req, req.UserEmail, now)
		if err := s.coupons.Create(ctx, coupon); err != nil {
			s.releaseCode(ctx, req.Code)
			return nil, err
		}
		return []*model.Coupon{coupon}, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		s.releaseCode(ctx, req.Code)
		return nil, err
	}
	if len(users) == 0 {
		s.releaseCode(ctx, req.Code)
		return nil, apperrors.ErrNoUsers
	}

	coupons := make([]*model.Coupon, 0, len(users))
	for _, user := range users {
		coupons = append(coupons, s.newCoupon(req, user.Email, now))
	}
	if err := s.coupons.CreateMany(ctx, coupons); err != nil {
		s.releaseCode(ctx, req.Code)
		return nil, err
	}

	return coupons, nil
}

// Verify reports whether a code is still redeemable. Pure read; the flag only
// flips during order placement.
func (s *CouponService) Verify(ctx context.Context, code string) (*model.VerifyCouponResponse, error) {
	coupon, err := s.coupons.FindUnusedByCode(ctx, code)
	if err == nil {
		discount := coupon.Discount
		return &model.VerifyCouponResponse{Valid: true, DiscountAmount: &discount}, nil
	}
	if err != apperrors.ErrCouponNotFound {
		return nil, err
	}

	count, err := s.coupons.CountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &model.VerifyCouponResponse{Valid: false, Message: "Coupon already used!"}, nil
	}

	return &model.VerifyCouponResponse{Valid: false, Message: "Invalid coupon"}, nil
}

// List returns every coupon document
func (s *CouponService) List(ctx context.Context) ([]*model.Coupon, error) {
	return s.coupons.List(ctx)
}

// Delete removes a coupon by id. When the last document carrying a code is
// removed, the registry entry is freed so the code can be reissued.
func (s *CouponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	coupon, err := s.coupons.Delete(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.coupons.CountByCode(ctx, coupon.Code)
	if err == nil && count == 0 {
		s.releaseCode(ctx, coupon.Code)
	}

	return nil
}

func (s *CouponService) newCoupon(req *model.CreateCouponRequest, email string, now time.Time) *model.Coupon {
	return &model.Coupon{
		Code:        req.Code,
		Discount:    *req.Discount,
		Description: req.Description,
		UserEmail:   email,
		Used:        false,
		ExpiryDate:  req.ExpiryDate,
		CreatedAt:   now,
	}
}

// releaseCode is best-effort compensation when creation fails after the code
// was reserved.
func (s *CouponService) releaseCode(ctx context.Context, code string) {
	_ = s.coupons.ReleaseCode(ctx, code)
}
