// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tableside/tableside/internal/auth"
	"github.com/tableside/tableside/internal/model"
	"github.com/tableside/tableside/internal/repository"
)

// Auth service errors.
var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailTaken       = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown account and wrong password,
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	minPasswordLength = 8
	maxNameLength     = 100
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash is verified against when login hits an unknown email, so both
// failure paths cost roughly one argon2 computation.
var dummyHash = func() string {
	h, err := auth.HashPassword("tableside-dummy-password")
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService handles registration, login, and profile lookups.
type AuthService struct {
	repo *repository.Repository
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register validates the input, hashes the password, and persists the user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if err := validateRegistration(email, input.Password, name); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the account on success.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Equalize timing with the wrong-password path.
			_, _ = auth.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Profile returns the user's current profile, read fresh from storage.
// Session cookies are trusted only for the user ID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// validateRegistration checks registration field shape.
func validateRegistration(email, password, name string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if name == "" || len(name) > maxNameLength {
		return ErrNameRequired
	}
	return nil
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
