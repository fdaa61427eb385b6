package repository

import (
	"context"

	"robe-backend/internal/model"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// UpsertByEmail creates the user on first login or refreshes uid and
	// lastLogin on a repeat login. Returns true when a new document was
	// created.
	UpsertByEmail(ctx context.Context, user *model.User) (bool, error)

	// List returns every user document
	List(ctx context.Context) ([]*model.User, error)

	// GetRoleByEmail returns the stored role for an email, or ErrNotFound
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}
