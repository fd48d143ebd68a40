package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/penshort/userapi/internal/model"
)

func TestStub_FindUser(t *testing.T) {
	t.Parallel()

	s := NewStub()
	ctx := context.Background()

	user := model.NewUser("Ann", "a@b.com")
	if err := s.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	// Inserts are discarded, so even a just-inserted user is not found.
	for _, id := range []uuid.UUID{user.ID, uuid.Nil, uuid.New()} {
		if _, err := s.FindUser(ctx, id); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("FindUser(%s) error = %v, want ErrUserNotFound", id, err)
		}
	}
}

func TestStub_ListUsers(t *testing.T) {
	t.Parallel()

	users, total, err := NewStub().ListUsers(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", users)
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
}

func TestStub_Ping(t *testing.T) {
	if err := NewStub().Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v, want nil", err)
	}
}
