package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect establishes a connection to MongoDB
func Connect(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	clientOptions := options.Client().ApplyURI(uri)

	// Set connection timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)

	mongoDB := &MongoDB{
		Client:   client,
		Database: db,
	}

	// Create indexes
	if err := mongoDB.CreateIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mongoDB, nil
}

// CreateIndexes creates all necessary indexes for the application
func (m *MongoDB) CreateIndexes(ctx context.Context) error {
	// Unique index on the coupon code registry. Creating a coupon first
	// claims its code here, so duplicate codes fail at the storage layer
	// instead of a read-then-insert race.
	registryCollection := m.Database.Collection("coupon_codes")
	codeRegistryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("coupon_code_unique"),
	}
	if _, err := registryCollection.Indexes().CreateOne(ctx, codeRegistryIndex); err != nil {
		return fmt.Errorf("failed to create coupon code registry index: %w", err)
	}

	// Non-unique index on coupons.code: broadcast assignment stores one
	// document per user, all sharing a code.
	couponsCollection := m.Database.Collection("coupons")
	couponCodeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("coupon_code_index"),
	}
	if _, err := couponsCollection.Indexes().CreateOne(ctx, couponCodeIndex); err != nil {
		return fmt.Errorf("failed to create coupon code index: %w", err)
	}

	// Orders are listed newest first
	ordersCollection := m.Database.Collection("orders")
	orderCreatedIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("order_created_index"),
	}
	if _, err := ordersCollection.Indexes().CreateOne(ctx, orderCreatedIndex); err != nil {
		return fmt.Errorf("failed to create order createdAt index: %w", err)
	}

	// Users are looked up by email on every login upsert
	usersCollection := m.Database.Collection("users")
	userEmailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email_index"),
	}
	if _, err := usersCollection.Indexes().CreateOne(ctx, userEmailIndex); err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	return nil
}

// Disconnect closes the MongoDB connection
func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
