package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ranaIslam01/server/internal/auth"
	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
	"github.com/ranaIslam01/server/pkg/middleware"
)

const bcryptCost = 12

// UserService implements registration, authentication and profile
// management on top of the user repository. Password hashes never leave
// this layer.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.JWTManager
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens *auth.JWTManager, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account and returns the user together with a
// signed session token. The email is normalized before the uniqueness
// check so that addresses differing only in case or surrounding
// whitespace collide.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	email := domain.NormalizeEmail(input.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.AlreadyExists("user", "email", email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  string(hash),
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.Hex()),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// LoginInput holds the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies the credentials and returns the user together with a
// signed session token. Unknown email and wrong password produce the
// same error so the response does not reveal which part failed.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	email := domain.NormalizeEmail(input.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.Hex()))

	return user, token, nil
}

// GetProfile returns the account identified by id.
func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfileInput holds the optional profile changes. Nil fields are
// left untouched; an absent password keeps the stored hash as-is.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateProfile applies the provided changes to the account and returns
// the updated user together with a fresh session token.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, input UpdateProfileInput) (*domain.User, string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get user for update: %w", err)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email != "" && email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, "", apperrors.AlreadyExists("user", "email", email)
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, "", fmt.Errorf("check existing email: %w", err)
			}
			user.Email = email
		}
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", user.ID.Hex()))

	return user, token, nil
}

// ResolveIdentity loads the account behind a validated token subject.
// The access guard calls this on every authenticated request, so a token
// for a deleted account stops working immediately.
func (s *UserService) ResolveIdentity(ctx context.Context, userID string) (*middleware.Identity, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("user", userID)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		UserID:  user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
