package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/dbx"
	"github.com/dkurilov/notehub/internal/server/models"
	noterepo "github.com/dkurilov/notehub/internal/server/repositories/notes"
	tagrepo "github.com/dkurilov/notehub/internal/server/repositories/tags"
	userrepo "github.com/dkurilov/notehub/internal/server/repositories/users"
)

// --- in-memory fakes shared by the service tests ---

type memUsersRepo struct {
	users  []*models.User
	nextID int64

	creates int
	links   int

	failWith error
}

func (f *memUsersRepo) add(u *models.User) *models.User {
	f.nextID++
	u.ID = f.nextID
	u.IsActive = true
	u.CreatedAt = time.Now()
	f.users = append(f.users, u)
	return u
}

func (f *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, common.ErrorConflict
		}
	}
	f.creates++
	return f.add(user), nil
}

func (f *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *memUsersRepo) LinkGoogleAccount(ctx context.Context, userID int64, googleID string, picture *string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.ID == userID {
			f.links++
			u.GoogleID = &googleID
			if picture != nil {
				u.ProfilePicture = picture
			}
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) UpdatePreferences(ctx context.Context, userID int64, theme, font *string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.ID == userID {
			if theme != nil {
				u.PreferredTheme = theme
			}
			if font != nil {
				u.PreferredFont = font
			}
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memNotesRepo struct {
	notes  []*models.Note
	nextID int64
}

func (f *memNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	f.nextID++
	note.ID = f.nextID
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *memNotesRepo) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memNotesRepo) ListByOwner(ctx context.Context, userID int64, archived bool) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range f.notes {
		if n.UserID == userID && n.IsArchived == archived {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *memNotesRepo) Update(ctx context.Context, id, userID int64, patch noterepo.UpdateParams) (*models.Note, error) {
	note, err := f.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.IsArchived != nil {
		note.IsArchived = *patch.IsArchived
	}
	if patch.ThemeColor != nil {
		note.ThemeColor = patch.ThemeColor
	}
	if patch.FontFamily != nil {
		note.FontFamily = patch.FontFamily
	}
	note.UpdatedAt = time.Now()
	return note, nil
}

func (f *memNotesRepo) Delete(ctx context.Context, id, userID int64) error {
	for i, n := range f.notes {
		if n.ID == id && n.UserID == userID {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memTagsRepo struct {
	tags     []*models.Tag
	nextID   int64
	attached map[int64]map[int64]bool // noteID -> tagID set
}

func (f *memTagsRepo) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	for _, t := range f.tags {
		if t.Name == name {
			return t, nil
		}
	}
	f.nextID++
	tag := &models.Tag{ID: f.nextID, Name: name}
	f.tags = append(f.tags, tag)
	return tag, nil
}

func (f *memTagsRepo) Attach(ctx context.Context, noteID, tagID int64) error {
	if f.attached == nil {
		f.attached = map[int64]map[int64]bool{}
	}
	if f.attached[noteID] == nil {
		f.attached[noteID] = map[int64]bool{}
	}
	f.attached[noteID][tagID] = true
	return nil
}

func (f *memTagsRepo) ListByNote(ctx context.Context, noteID int64) ([]*models.Tag, error) {
	var result []*models.Tag
	for _, t := range f.tags {
		if f.attached[noteID][t.ID] {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return strings.Compare(result[i].Name, result[j].Name) < 0 })
	return result, nil
}

type fakeRepoManager struct {
	u *memUsersRepo
	n *memNotesRepo
	t *memTagsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) userrepo.Repository { return m.u }

func (m *fakeRepoManager) Notes(db dbx.DBTX) noterepo.Repository { return m.n }

func (m *fakeRepoManager) Tags(db dbx.DBTX) tagrepo.Repository { return m.t }
