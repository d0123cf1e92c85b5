package notes

import (
	"context"

	"github.com/dkurilov/notehub/internal/server/models"
)

// UpdateParams is a partial-update patch: nil fields are left untouched.
// updated_at is refreshed on every successful update regardless of the
// patch contents.
type UpdateParams struct {
	Title      *string
	Content    *string
	IsArchived *bool
	ThemeColor *string
	FontFamily *string
}

// Repository owns note persistence. Every read/update/delete is scoped by
// (id, user_id) in one step, so a note owned by someone else is
// indistinguishable from a nonexistent one: both are common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Note, error)
	ListByOwner(ctx context.Context, userID int64, archived bool) ([]*models.Note, error)
	Update(ctx context.Context, id, userID int64, patch UpdateParams) (*models.Note, error)
	Delete(ctx context.Context, id, userID int64) error
}
