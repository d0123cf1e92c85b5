// Package notes provides the PostgreSQL-backed note store with
// ownership-scoped queries.
package notes

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

const noteColumns = `id, user_id, title, content, is_archived, theme_color, font_family, created_at, updated_at`

func scanNote(row *sql.Row) (*models.Note, error) {
	note := &models.Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.IsArchived, &note.ThemeColor, &note.FontFamily,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (user_id, title, content, is_archived, theme_color, font_family)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.UserID, note.Title, note.Content, note.IsArchived, note.ThemeColor, note.FontFamily).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	return scanNote(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64, archived bool) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1 AND is_archived = $2
		 ORDER BY updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, archived)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Content,
			&item.IsArchived, &item.ThemeColor, &item.FontFamily,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, userID int64, patch UpdateParams) (*models.Note, error) {
	// COALESCE keeps the stored value for absent patch fields; updated_at is
	// always refreshed.
	query :=
		`UPDATE notes
		 SET title       = COALESCE($3, title),
		     content     = COALESCE($4, content),
		     is_archived = COALESCE($5, is_archived),
		     theme_color = COALESCE($6, theme_color),
		     font_family = COALESCE($7, font_family),
		     updated_at  = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + noteColumns

	return scanNote(r.db.QueryRowContext(ctx, query, id, userID,
		patch.Title, patch.Content, patch.IsArchived, patch.ThemeColor, patch.FontFamily))
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
