package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository defines the interface for product data operations.
// Products are free-form documents; the store does not impose a schema.
type ProductRepository interface {
	// Create inserts a product document and returns its identifier
	Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error)

	// List returns every product document
	List(ctx context.Context) ([]bson.M, error)

	// GetByID returns one product or ErrNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)

	// Update merges the given fields into an existing product
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error

	// Delete removes a product by id
	Delete(ctx context.Context, id primitive.ObjectID) error
}
