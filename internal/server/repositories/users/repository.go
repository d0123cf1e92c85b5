package users

import (
	"context"

	"github.com/dkurilov/notehub/internal/server/models"
)

// Repository is the credential store: user records with their password hash
// and/or Google identity.
type Repository interface {
	// Create inserts a new user. A duplicate email, username, or google_id
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail matches the email column only: an email-shaped username on
	// another account is not a match.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsernameOrEmail matches the identifier against both the username
	// and email columns and returns the single match or common.ErrorNotFound.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)

	// GetByGoogleIDOrEmail returns the user matching the provider id, or
	// failing that the email, or common.ErrorNotFound. A google_id match
	// takes precedence over an email match.
	GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error)

	// UsernameExists reports whether the username is already taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// LinkGoogleAccount persists the provider id and profile picture onto an
	// existing record (password-only to dual-auth upgrade).
	LinkGoogleAccount(ctx context.Context, userID int64, googleID string, picture *string) (*models.User, error)

	// UpdatePreferences applies the non-nil preference fields and returns the
	// updated record. Nil fields are left untouched.
	UpdatePreferences(ctx context.Context, userID int64, theme, font *string) (*models.User, error)
}
