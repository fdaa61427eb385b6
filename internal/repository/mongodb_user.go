package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"robe-backend/internal/model"
	apperrors "robe-backend/pkg/errors"
)

// mongodbUserRepository implements UserRepository using MongoDB
type mongodbUserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new MongoDB-based user repository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &mongodbUserRepository{
		collection: db.Collection("users"),
	}
}

// UpsertByEmail creates or refreshes a login record in one atomic operation.
// A repeat login touches lastLogin only; identity fields are written once at
// creation.
func (r *mongodbUserRepository) UpsertByEmail(ctx context.Context, user *model.User) (bool, error) {
	insert := bson.M{
		"email":     user.Email,
		"uid":       user.UID,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}
	if user.Name != "" {
		insert["name"] = user.Name
	}
	if user.Photo != "" {
		insert["photo"] = user.Photo
	}

	update := bson.M{
		"$set":         bson.M{"lastLogin": user.LastLogin},
		"$setOnInsert": insert,
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": user.Email},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}

	return result.UpsertedCount > 0, nil
}

// List returns every user document
func (r *mongodbUserRepository) List(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetRoleByEmail returns the stored role for an email
func (r *mongodbUserRepository) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}

	return user.Role, nil
}
