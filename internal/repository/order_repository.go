package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts an order and returns its generated identifier
	Create(ctx context.Context, order *model.Order) (primitive.ObjectID, error)

	// ListNewestFirst returns all orders sorted by creation time, descending
	ListNewestFirst(ctx context.Context) ([]*model.Order, error)
}
