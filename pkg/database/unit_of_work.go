package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs a function with transactional semantics. Services depend on
// this interface so tests can substitute a pass-through implementation.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UnitOfWork manages MongoDB transactions
type UnitOfWork struct {
	client *mongo.Client
}

// NewUnitOfWork creates a new Unit of Work instance
func NewUnitOfWork(client *mongo.Client) *UnitOfWork {
	return &UnitOfWork{
		client: client,
	}
}

// WithTransaction executes a function within a MongoDB transaction.
// The context handed to fn carries the session; collection operations made
// with it join the transaction. If fn returns an error, the transaction is
// aborted and nothing it wrote is visible.
func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := uow.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	return err
}
