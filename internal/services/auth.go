package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"campuschat-backend/internal/models"
	"campuschat-backend/internal/repository"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type chatLister interface {
	ListActiveByUser(ctx context.Context, userID int64) ([]models.ChatSummary, error)
}

type AuthService struct {
	users userRepository
	chats chatLister
}

func NewAuthService(users userRepository, chats chatLister) *AuthService {
	return &AuthService{users: users, chats: chats}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return &ValidationError{Message: "All fields are required"}
	}

	if err := validatePassword(req.Password); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if strings.Contains(strings.ToLower(req.Password), strings.ToLower(req.Name)) {
		return &ValidationError{Message: "Password must not contain your name"}
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return &ConflictError{Message: "Email is already registered"}
		}
		return err
	}

	return nil
}

// Login verifies credentials and returns the user's profile together with
// their non-deleted chats. An unknown email and a wrong password are
// indistinguishable by message.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, []models.ChatSummary, error) {
	if req.Email == "" || req.Password == "" {
		return nil, nil, &ValidationError{Message: "Email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	chats, err := s.chats.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, chats, nil
}

func validatePassword(pw string) error {
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, ch := range pw {
		switch {
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if len(pw) < 8 || !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return fmt.Errorf("Password must be at least 8 characters and contain uppercase, lowercase, a digit, and a symbol")
	}
	return nil
}

// Custom errors
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }
