package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"robe-backend/internal/model"
)

// mongodbOrderRepository implements OrderRepository using MongoDB
type mongodbOrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new MongoDB-based order repository
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongodbOrderRepository{
		collection: db.Collection("orders"),
	}
}

// Create inserts an order and returns its generated identifier
func (r *mongodbOrderRepository) Create(ctx context.Context, order *model.Order) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	order.ID = id

	return id, nil
}

// ListNewestFirst returns all orders sorted by creation time, descending
func (r *mongodbOrderRepository) ListNewestFirst(ctx context.Context) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []*model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
