package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"robe-backend/internal/model"
	apperrors "robe-backend/pkg/errors"
)

// mongodbSlideRepository implements SlideRepository using MongoDB
type mongodbSlideRepository struct {
	collection *mongo.Collection
}

// NewSlideRepository creates a new MongoDB-based slide repository
func NewSlideRepository(db *mongo.Database) SlideRepository {
	return &mongodbSlideRepository{
		collection: db.Collection("slides"),
	}
}

// Create inserts a slide document
func (r *mongodbSlideRepository) Create(ctx context.Context, slide *model.Slide) error {
	result, err := r.collection.InsertOne(ctx, slide)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		slide.ID = id
	}

	return nil
}

// List returns every slide document
func (r *mongodbSlideRepository) List(ctx context.Context) ([]*model.Slide, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slides := []*model.Slide{}
	if err := cursor.All(ctx, &slides); err != nil {
		return nil, err
	}

	return slides, nil
}

// GetByID returns one slide
func (r *mongodbSlideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Slide, error) {
	var slide model.Slide
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slide)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &slide, nil
}

// Update merges the given fields into an existing slide
func (r *mongodbSlideRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a slide by id
func (r *mongodbSlideRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
