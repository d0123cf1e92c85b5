// Package services contains server-side business logic: user registration
// and password login, Google identity reconciliation, and note/tag
// operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/server/auth"
	"github.com/dkurilov/notehub/internal/server/config"
	"github.com/dkurilov/notehub/internal/server/models"
	"github.com/dkurilov/notehub/internal/server/repositories/repomanager"
)

// Field-specific registration conflicts. Both match common.ErrorConflict.
var (
	ErrEmailRegistered = fmt.Errorf("email already registered: %w", common.ErrorConflict)
	ErrUsernameTaken   = fmt.Errorf("username already taken: %w", common.ErrorConflict)
)

// UserService handles registration, password login, and profile updates.
type UserService struct {
	db                          *sql.DB
	repos                       repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repos:                       m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a password user. Duplicate email or username yields
// ErrEmailRegistered/ErrUsernameTaken; a concurrent registration slipping
// past the pre-checks is still caught by the unique constraint and surfaces
// as common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	// Email-only lookup: an email-shaped username on another account must
	// not block registration of that address.
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if taken, err := repo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, Username: username, HashedPassword: &hash}
	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies an identifier (username or email) plus password and mints
// an access token. Unknown identifier, missing password hash, and wrong
// password all collapse to common.ErrorUnauthorized so callers cannot
// enumerate accounts.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if user.HashedPassword == nil || !auth.CheckPassword(*user.HashedPassword, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, token, nil
}

// GetByUsername resolves a token subject to the stored user record.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repos.Users(s.db).GetByUsername(ctx, username)
}

// UpdatePreferences applies the non-nil preference fields. Nil fields are
// untouched; a preference cannot be cleared through this operation.
func (s *UserService) UpdatePreferences(ctx context.Context, userID int64, theme, font *string) (*models.User, error) {
	return s.repos.Users(s.db).UpdatePreferences(ctx, userID, theme, font)
}
