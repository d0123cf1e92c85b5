package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dkurilov/notehub/internal/server/models"
	noterepo "github.com/dkurilov/notehub/internal/server/repositories/notes"
	"github.com/dkurilov/notehub/internal/server/repositories/repomanager"
)

// NoteWithTags is a note together with its attached tags, the shape every
// note operation returns.
type NoteWithTags struct {
	Note *models.Note
	Tags []*models.Tag
}

// NoteService owns note CRUD and tag attachment. Every operation is scoped
// by the calling user's id; a note owned by someone else behaves exactly
// like a nonexistent one.
type NoteService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repos: m}
}

func (s *NoteService) withTags(ctx context.Context, note *models.Note) (*NoteWithTags, error) {
	tags, err := s.repos.Tags(s.db).ListByNote(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	return &NoteWithTags{Note: note, Tags: tags}, nil
}

// Create stores a new note owned by userID.
func (s *NoteService) Create(ctx context.Context, userID int64, note *models.Note) (*NoteWithTags, error) {
	note.UserID = userID
	created, err := s.repos.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, err
	}
	return &NoteWithTags{Note: created, Tags: nil}, nil
}

// Get returns the note with its tags, or common.ErrorNotFound.
func (s *NoteService) Get(ctx context.Context, userID, noteID int64) (*NoteWithTags, error) {
	note, err := s.repos.Notes(s.db).GetByIDAndOwner(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}
	return s.withTags(ctx, note)
}

// List returns the user's notes filtered by the archived flag.
func (s *NoteService) List(ctx context.Context, userID int64, archived bool) ([]*NoteWithTags, error) {
	notes, err := s.repos.Notes(s.db).ListByOwner(ctx, userID, archived)
	if err != nil {
		return nil, err
	}

	result := make([]*NoteWithTags, 0, len(notes))
	for _, note := range notes {
		item, err := s.withTags(ctx, note)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Update applies the patch and returns the refreshed note.
func (s *NoteService) Update(ctx context.Context, userID, noteID int64, patch noterepo.UpdateParams) (*NoteWithTags, error) {
	note, err := s.repos.Notes(s.db).Update(ctx, noteID, userID, patch)
	if err != nil {
		return nil, err
	}
	return s.withTags(ctx, note)
}

// Delete removes the note; associations cascade in the store.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int64) error {
	return s.repos.Notes(s.db).Delete(ctx, noteID, userID)
}

// AddTags finds or creates each named tag and attaches it to the note.
// Blank names are skipped; repeated names and already-attached tags are
// no-ops. Tags are global, so a tag created here without an association
// (crash between the two statements) is reusable rather than harmful.
func (s *NoteService) AddTags(ctx context.Context, userID, noteID int64, names []string) (*NoteWithTags, error) {
	note, err := s.repos.Notes(s.db).GetByIDAndOwner(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	tagRepo := s.repos.Tags(s.db)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := tagRepo.Attach(ctx, note.ID, tag.ID); err != nil {
			return nil, err
		}
	}

	return s.withTags(ctx, note)
}
