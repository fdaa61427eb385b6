package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
	"robe-backend/internal/repository"
	"robe-backend/pkg/database"
	apperrors "robe-backend/pkg/errors"
)

// OrderService handles order placement and the coupon redemption it implies
type OrderService struct {
	orders  repository.OrderRepository
	coupons repository.CouponRepository
	tx      database.TxRunner
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, coupons repository.CouponRepository, tx database.TxRunner) *OrderService {
	return &OrderService{
		orders:  orders,
		coupons: coupons,
		tx:      tx,
	}
}

// Place validates and records an order. When the order references a coupon,
// redemption and order insertion run in one transaction: the coupon flips to
// used if and only if the order is durably recorded. A coupon whose code is
// unknown or already exhausted rejects the order without writing anything.
func (s *OrderService) Place(ctx context.Context, order *model.Order) (primitive.ObjectID, error) {
	if len(order.Customer) == 0 || len(order.Items) == 0 {
		return primitive.NilObjectID, apperrors.ErrInvalidOrder
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if order.CouponApplied == "" {
		return s.orders.Create(ctx, order)
	}

	var orderID primitive.ObjectID
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// CAS-guarded flip of exactly one unused coupon with the code
		if err := s.coupons.Redeem(ctx, order.CouponApplied, time.Now()); err != nil {
			return err
		}

		id, err := s.orders.Create(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	return orderID, nil
}

// List returns all orders, newest first
func (s *OrderService) List(ctx context.Context) ([]*model.Order, error) {
	return s.orders.ListNewestFirst(ctx)
}
