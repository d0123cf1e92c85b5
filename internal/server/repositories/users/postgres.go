// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/dbx"
	"github.com/dkurilov/notehub/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, username, hashed_password, is_active, google_id, profile_picture, preferred_theme, preferred_font, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword,
		&user.IsActive, &user.GoogleID, &user.ProfilePicture,
		&user.PreferredTheme, &user.PreferredFont, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, username, hashed_password, google_id, profile_picture)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_active, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.HashedPassword, user.GoogleID, user.ProfilePicture).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE username = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE email = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE username = $1 OR email = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

func (r *PostgresRepository) GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	// A google_id match wins over an email match when both rows exist.
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE google_id = $1 OR email = $2
		 ORDER BY (google_id = $1) DESC NULLS LAST
		 LIMIT 1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, googleID, email))
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) LinkGoogleAccount(ctx context.Context, userID int64, googleID string, picture *string) (*models.User, error) {
	query :=
		`UPDATE users
		 SET google_id = $2, profile_picture = COALESCE($3, profile_picture)
		 WHERE id = $1
		 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID, googleID, picture))
	if err != nil && dbx.IsUniqueViolation(err) {
		return nil, common.ErrorConflict
	}
	return user, err
}

func (r *PostgresRepository) UpdatePreferences(ctx context.Context, userID int64, theme, font *string) (*models.User, error) {
	// Nil patch fields keep the stored value; the caller cannot clear a
	// preference through this operation.
	query :=
		`UPDATE users
		 SET preferred_theme = COALESCE($2, preferred_theme),
		     preferred_font  = COALESCE($3, preferred_font)
		 WHERE id = $1
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, userID, theme, font))
}
