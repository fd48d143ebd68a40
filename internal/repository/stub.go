package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/penshort/userapi/internal/model"
)

// Stub is a users store with no backing storage. Lookups never find
// anything, listings are empty and inserts are accepted and discarded.
type Stub struct{}

// NewStub returns a Stub store.
func NewStub() *Stub {
	return &Stub{}
}

// InsertUser accepts the user without storing it.
func (s *Stub) InsertUser(ctx context.Context, user *model.User) error {
	return nil
}

// FindUser always returns ErrUserNotFound.
func (s *Stub) FindUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, ErrUserNotFound
}

// ListUsers always returns an empty list.
func (s *Stub) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	return []*model.User{}, 0, nil
}

// Ping always succeeds.
func (s *Stub) Ping(ctx context.Context) error {
	return nil
}
