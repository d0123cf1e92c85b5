package tags

import (
	"context"

	"github.com/dkurilov/notehub/internal/server/models"
)

// Repository owns the global tag set and the note-tag association. Tags are
// shared across users and deduplicated by name.
type Repository interface {
	// GetOrCreate returns the tag with the given name, creating it if needed.
	// Safe under concurrent callers creating the same name.
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)

	// Attach links a tag to a note. Attaching an already-attached tag is a
	// no-op; no duplicate association rows are created.
	Attach(ctx context.Context, noteID, tagID int64) error

	// ListByNote returns the tags attached to a note, ordered by name.
	ListByNote(ctx context.Context, noteID int64) ([]*models.Tag, error)
}
