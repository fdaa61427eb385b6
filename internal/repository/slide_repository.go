package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
)

// SlideRepository defines the interface for promotional slide operations
type SlideRepository interface {
	// Create inserts a slide document
	Create(ctx context.Context, slide *model.Slide) error

	// List returns every slide document
	List(ctx context.Context) ([]*model.Slide, error)

	// GetByID returns one slide or ErrNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Slide, error)

	// Update merges the given fields into an existing slide
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error

	// Delete removes a slide by id
	Delete(ctx context.Context, id primitive.ObjectID) error
}
