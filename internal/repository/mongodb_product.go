package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "robe-backend/pkg/errors"
)

// mongodbProductRepository implements ProductRepository using MongoDB
type mongodbProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new MongoDB-based product repository
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongodbProductRepository{
		collection: db.Collection("products"),
	}
}

// Create inserts a product document and returns its identifier
func (r *mongodbProductRepository) Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns every product document
func (r *mongodbProductRepository) List(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []bson.M{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID returns one product
func (r *mongodbProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var product bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

// Update merges the given fields into an existing product
func (r *mongodbProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a product by id
func (r *mongodbProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
