// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/penshort/userapi/internal/apierror"
	"github.com/penshort/userapi/internal/cache"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/model"
	"github.com/penshort/userapi/internal/repository"
)

// Validation messages returned to clients.
const (
	MsgNameEmpty    = "name cannot be empty"
	MsgInvalidEmail = "invalid email address"
	MsgEmailTaken   = "email already exists"
)

// Listing limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*perPage within int32 and page within uint32.
	MaxPage = math.MaxInt32 / MaxPerPage
)

// UserStore persists users. repository.Repository and repository.Stub implement it.
type UserStore interface {
	InsertUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error)
}

// UserCache is a read-through cache in front of a UserStore.
type UserCache interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	IsUserNegativelyCached(ctx context.Context, id uuid.UUID) (bool, error)
	SetUserNotFound(ctx context.Context, id uuid.UUID) error
}

// UserService handles user business logic.
type UserService struct {
	store   UserStore
	cache   UserCache
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. userCache may be nil.
func NewUserService(store UserStore, userCache UserCache, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:   store,
		cache:   userCache,
		logger:  logger,
		metrics: recorder,
	}
}

// ValidateCreateUser checks a create request. The name is checked before the
// email, so a request with both fields invalid reports the name.
func ValidateCreateUser(name, email string) error {
	if name == "" {
		return apierror.Validation(MsgNameEmpty)
	}
	if !strings.Contains(email, "@") {
		return apierror.Validation(MsgInvalidEmail)
	}
	return nil
}

// CreateUser validates the input and stores a new user with a random ID.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	if err := ValidateCreateUser(name, email); err != nil {
		return nil, err
	}

	user := model.NewUser(name, email)

	start := time.Now()
	err := s.store.InsertUser(ctx, user)
	s.metrics.ObserveStoreDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apierror.Validation(MsgEmailTaken)
		}
		return nil, apierror.Database(err.Error())
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if user, found, done := s.fromCache(ctx, id); done {
		if !found {
			return nil, notFound(id)
		}
		return user, nil
	}

	start := time.Now()
	user, err := s.store.FindUser(ctx, id)
	s.metrics.ObserveStoreDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.cacheNotFound(ctx, id)
			return nil, notFound(id)
		}
		return nil, apierror.Database(err.Error())
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("cache_set_failed", "user_id", id.String(), "error", err)
		}
	}

	return user, nil
}

// ListUsers returns the first MaxPerPage users.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	page, err := s.ListUsersPage(ctx, 1, MaxPerPage)
	if err != nil {
		return nil, err
	}
	return page.Users, nil
}

// UserPage is one page of users.
type UserPage struct {
	Users   []*model.User
	Total   int64
	Page    int
	PerPage int
}

// ListUsersPage returns one page of users. page defaults to 1 and is capped
// at MaxPage; perPage defaults to DefaultPerPage and is capped at MaxPerPage.
func (s *UserService) ListUsersPage(ctx context.Context, page, perPage int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	start := time.Now()
	users, total, err := s.store.ListUsers(ctx, (page-1)*perPage, perPage)
	s.metrics.ObserveStoreDuration(time.Since(start))
	if err != nil {
		return nil, apierror.Database(err.Error())
	}
	if users == nil {
		users = []*model.User{}
	}

	return &UserPage{
		Users:   users,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// fromCache consults the cache. done is false when the store must be asked.
func (s *UserService) fromCache(ctx context.Context, id uuid.UUID) (user *model.User, found, done bool) {
	if s.cache == nil {
		return nil, false, false
	}

	negative, err := s.cache.IsUserNegativelyCached(ctx, id)
	if err != nil {
		s.logger.Warn("negative_cache_check_failed", "user_id", id.String(), "error", err)
	} else if negative {
		s.metrics.IncUserCacheHit()
		return nil, false, true
	}

	user, err = s.cache.GetUser(ctx, id)
	switch {
	case err == nil:
		s.metrics.IncUserCacheHit()
		return user, true, true
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.IncUserCacheMiss()
	default:
		s.logger.Warn("cache_get_failed", "user_id", id.String(), "error", err)
	}

	return nil, false, false
}

func (s *UserService) cacheNotFound(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUserNotFound(ctx, id); err != nil {
		s.logger.Warn("negative_cache_set_failed", "user_id", id.String(), "error", err)
	}
}

func notFound(id uuid.UUID) error {
	return apierror.NotFound(fmt.Sprintf("User %s not found", id))
}
