package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"robe-backend/internal/model"
	apperrors "robe-backend/pkg/errors"
)

// mongodbCouponRepository implements CouponRepository using MongoDB
type mongodbCouponRepository struct {
	coupons  *mongo.Collection
	registry *mongo.Collection
}

// NewCouponRepository creates a new MongoDB-based coupon repository
func NewCouponRepository(db *mongo.Database) CouponRepository {
	return &mongodbCouponRepository{
		coupons:  db.Collection("coupons"),
		registry: db.Collection("coupon_codes"),
	}
}

// ReserveCode claims a code in the registry collection. The unique index on
// code turns a duplicate creation into a storage-level conflict instead of a
// check-then-act race.
func (r *mongodbCouponRepository) ReserveCode(ctx context.Context, code string) error {
	_, err := r.registry.InsertOne(ctx, &model.CouponCode{
		Code:      code,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrCouponCodeExists
		}
		return err
	}

	return nil
}

// ReleaseCode frees a registry entry
func (r *mongodbCouponRepository) ReleaseCode(ctx context.Context, code string) error {
	_, err := r.registry.DeleteOne(ctx, bson.M{"code": code})
	return err
}

// Create inserts a single coupon document
func (r *mongodbCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	result, err := r.coupons.InsertOne(ctx, coupon)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = id
	}

	return nil
}

// CreateMany inserts one coupon document per target user
func (r *mongodbCouponRepository) CreateMany(ctx context.Context, coupons []*model.Coupon) error {
	docs := make([]interface{}, 0, len(coupons))
	for _, c := range coupons {
		docs = append(docs, c)
	}

	result, err := r.coupons.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, insertedID := range result.InsertedIDs {
		if id, ok := insertedID.(primitive.ObjectID); ok && i < len(coupons) {
			coupons[i].ID = id
		}
	}

	return nil
}

// FindUnusedByCode returns an unused coupon carrying the code
func (r *mongodbCouponRepository) FindUnusedByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code, "used": false}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrCouponNotFound
		}
		return nil, err
	}

	return &coupon, nil
}

// CountByCode counts all coupon documents sharing a code
func (r *mongodbCouponRepository) CountByCode(ctx context.Context, code string) (int64, error) {
	return r.coupons.CountDocuments(ctx, bson.M{"code": code})
}

// Redeem atomically marks exactly one unused coupon with the code as used.
// The used:false filter is the compare-and-swap guard: concurrent redemptions
// of a single-use code cannot both match.
func (r *mongodbCouponRepository) Redeem(ctx context.Context, code string, at time.Time) error {
	result := r.coupons.FindOneAndUpdate(
		ctx,
		bson.M{"code": code, "used": false},
		bson.M{"$set": bson.M{"used": true, "usedAt": at}},
	)

	if err := result.Err(); err != nil {
		if err != mongo.ErrNoDocuments {
			return err
		}
		count, countErr := r.CountByCode(ctx, code)
		if countErr != nil {
			return countErr
		}
		if count > 0 {
			return apperrors.ErrCouponAlreadyUsed
		}
		return apperrors.ErrCouponNotFound
	}

	return nil
}

// List returns every coupon document
func (r *mongodbCouponRepository) List(ctx context.Context) ([]*model.Coupon, error) {
	cursor, err := r.coupons.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := []*model.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}

	return coupons, nil
}

// Delete removes a coupon by id and returns the removed document
func (r *mongodbCouponRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.coupons.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &coupon, nil
}
