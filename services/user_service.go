// File: services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"sports-scheduler/logger"
	"sports-scheduler/models"
	"sports-scheduler/store"
)

// UserService handles registration and credential checks.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a UserService over the given user store.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a new account. role == "admin" grants the admin flag,
// matching the registration form. The password is bcrypt-hashed before it
// is stored.
func (s *UserService) Register(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      role == "admin",
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Info.Printf("Registered user %s (admin=%t)", u.Email, u.IsAdmin)
	return u, nil
}

// Authenticate verifies an email/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		logger.Warn.Printf("Failed login attempt for %s", email)
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
