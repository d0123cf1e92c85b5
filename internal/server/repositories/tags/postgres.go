// Package tags provides the PostgreSQL-backed tag store and the note-tag
// association.
package tags

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	// Insert first so two concurrent callers cannot both miss the lookup;
	// ON CONFLICT makes the insert a no-op when the name already exists.
	insert := `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, name); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	tag := &models.Tag{}
	query := `SELECT id, name FROM tags WHERE name = $1`
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) Attach(ctx context.Context, noteID, tagID int64) error {
	query :=
		`INSERT INTO note_tags (note_id, tag_id)
		 VALUES ($1, $2)
		 ON CONFLICT (note_id, tag_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, noteID, tagID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByNote(ctx context.Context, noteID int64) ([]*models.Tag, error) {
	query :=
		`SELECT t.id, t.name FROM tags t
		 JOIN note_tags nt ON nt.tag_id = t.id
		 WHERE nt.note_id = $1
		 ORDER BY t.name
		 `

	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		var item models.Tag
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
