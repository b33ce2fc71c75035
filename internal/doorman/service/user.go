package service

import (
	"context"
	"errors"
	"strings"

	"github.com/doorman-auth/doorman/internal/doorman/domain"
	"github.com/doorman-auth/doorman/internal/doorman/store"
	"github.com/doorman-auth/doorman/pkg/cryptox"
	"github.com/doorman-auth/doorman/pkg/idx"
	"github.com/doorman-auth/doorman/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Login must not reveal which of the two failed.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrDuplicateUser = errors.New("duplicate_user")
)

type UserService struct {
	Store store.Store
}

// Register creates a new user with a hashed password and a fresh ULID.
func (s *UserService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Pre-check for a friendlier duplicate error; the unique indexes
		// remain the authority under concurrent registration.
		if _, err := tx.Users().GetUserByEmail(ctx, user.Email); err == nil {
			return store.ErrAlreadyExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies an email/password pair and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
