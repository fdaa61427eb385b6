package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
	"robe-backend/internal/service"
	"robe-backend/internal/testutil"
	apperrors "robe-backend/pkg/errors"
)

func seedCoupon(t *testing.T, coupons *testutil.FakeCouponRepo, code string) {
	t.Helper()
	svc := service.NewCouponService(coupons, testutil.NewFakeUserRepo())
	_, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code: code, Discount: discount(10), UserEmail: "a@x.com",
	})
	require.NoError(t, err)
}

func validOrder() *model.Order {
	return &model.Order{
		Customer: bson.M{"name": "Ada", "email": "a@x.com"},
		Items:    []bson.M{{"productId": "p1", "qty": 1}},
	}
}

func TestPlaceOrderRejectsInvalidShape(t *testing.T) {
	orders := testutil.NewFakeOrderRepo()
	svc := service.NewOrderService(orders, testutil.NewFakeCouponRepo(), &testutil.FakeTx{})
	ctx := context.Background()

	_, err := svc.Place(ctx, &model.Order{Items: []bson.M{{"productId": "p1"}}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrder)

	_, err = svc.Place(ctx, &model.Order{Customer: bson.M{"name": "Ada"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrder)

	// Rejection happens before any write
	assert.Zero(t, orders.Count())
}

func TestPlaceOrderDefaultsCreatedAt(t *testing.T) {
	orders := testutil.NewFakeOrderRepo()
	svc := service.NewOrderService(orders, testutil.NewFakeCouponRepo(), &testutil.FakeTx{})

	order := validOrder()
	id, err := svc.Place(context.Background(), order)
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, id)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestPlaceOrderRedeemsCoupon(t *testing.T) {
	coupons := testutil.NewFakeCouponRepo()
	orders := testutil.NewFakeOrderRepo()
	seedCoupon(t, coupons, "WELCOME10")
	svc := service.NewOrderService(orders, coupons, &testutil.FakeTx{})
	ctx := context.Background()

	order := validOrder()
	order.CouponApplied = "WELCOME10"
	id, err := svc.Place(ctx, order)
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, id)

	// Exactly the one coupon document flipped, with usedAt set
	all, err := coupons.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Used)
	require.NotNil(t, all[0].UsedAt)
}

func TestPlaceOrderCouponAlreadyUsed(t *testing.T) {
	coupons := testutil.NewFakeCouponRepo()
	orders := testutil.NewFakeOrderRepo()
	seedCoupon(t, coupons, "ONCE")
	svc := service.NewOrderService(orders, coupons, &testutil.FakeTx{})
	ctx := context.Background()

	first := validOrder()
	first.CouponApplied = "ONCE"
	_, err := svc.Place(ctx, first)
	require.NoError(t, err)

	second := validOrder()
	second.CouponApplied = "ONCE"
	_, err = svc.Place(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrCouponAlreadyUsed)
	assert.Equal(t, 1, orders.Count())
}

func TestPlaceOrderUnknownCoupon(t *testing.T) {
	orders := testutil.NewFakeOrderRepo()
	svc := service.NewOrderService(orders, testutil.NewFakeCouponRepo(), &testutil.FakeTx{})

	order := validOrder()
	order.CouponApplied = "NOSUCH"
	_, err := svc.Place(context.Background(), order)
	assert.ErrorIs(t, err, apperrors.ErrCouponNotFound)
	assert.Zero(t, orders.Count())
}

func TestPlaceOrderInsertFailureRollsBackRedemption(t *testing.T) {
	coupons := testutil.NewFakeCouponRepo()
	orders := testutil.NewFakeOrderRepo()
	seedCoupon(t, coupons, "SAFE")
	ctx := context.Background()

	snapshot := coupons.Snapshot()
	tx := &testutil.FakeTx{OnRollback: func() { coupons.Restore(snapshot) }}
	svc := service.NewOrderService(orders, coupons, tx)

	orders.CreateErr = errors.New("insert failed")
	order := validOrder()
	order.CouponApplied = "SAFE"
	_, err := svc.Place(ctx, order)
	require.Error(t, err)

	// Aborted transaction leaves the coupon redeemable
	c, err := coupons.FindUnusedByCode(ctx, "SAFE")
	require.NoError(t, err)
	assert.False(t, c.Used)
}

func TestConcurrentPlacementRedeemsOnce(t *testing.T) {
	coupons := testutil.NewFakeCouponRepo()
	orders := testutil.NewFakeOrderRepo()
	seedCoupon(t, coupons, "FLASH")
	svc := service.NewOrderService(orders, coupons, &testutil.FakeTx{})

	const attempts = 20
	var (
		successCount int64
		usedCount    int64
		wg           sync.WaitGroup
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := validOrder()
			order.CouponApplied = "FLASH"
			_, err := svc.Place(context.Background(), order)
			switch {
			case err == nil:
				atomic.AddInt64(&successCount, 1)
			case errors.Is(err, apperrors.ErrCouponAlreadyUsed):
				atomic.AddInt64(&usedCount, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successCount)
	assert.Equal(t, int64(attempts-1), usedCount)
	assert.Equal(t, 1, orders.Count())
}

func TestListOrdersNewestFirst(t *testing.T) {
	orders := testutil.NewFakeOrderRepo()
	svc := service.NewOrderService(orders, testutil.NewFakeCouponRepo(), &testutil.FakeTx{})
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first", "second", "third"} {
		order := validOrder()
		order.Customer = bson.M{"name": name}
		order.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := svc.Place(ctx, order)
		require.NoError(t, err)
	}

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Customer["name"])
}
