package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/server/models"
	noterepo "github.com/dkurilov/notehub/internal/server/repositories/notes"
)

func newNoteService() (*NoteService, *memNotesRepo, *memTagsRepo) {
	notes := &memNotesRepo{}
	tags := &memTagsRepo{}
	svc := NewNoteService(nil, &fakeRepoManager{n: notes, t: tags})
	return svc, notes, tags
}

func TestNoteServiceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newNoteService()

	created, err := svc.Create(ctx, 7, &models.Note{Title: "groceries", Content: "milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Note.UserID != 7 {
		t.Errorf("owner = %d, want 7", created.Note.UserID)
	}

	got, err := svc.Get(ctx, 7, created.Note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Note.Title != "groceries" {
		t.Errorf("title = %q", got.Note.Title)
	}
	if len(got.Tags) != 0 {
		t.Errorf("new note has %d tags", len(got.Tags))
	}
}

// A note owned by someone else must be indistinguishable from a nonexistent
// one across every operation.
func TestNoteServiceOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newNoteService()

	created, err := svc.Create(ctx, 7, &models.Note{Title: "private"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := created.Note.ID

	if _, err := svc.Get(ctx, 8, id); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("Get by non-owner: got %v, want common.ErrorNotFound", err)
	}
	title := "stolen"
	if _, err := svc.Update(ctx, 8, id, noterepo.UpdateParams{Title: &title}); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("Update by non-owner: got %v, want common.ErrorNotFound", err)
	}
	if err := svc.Delete(ctx, 8, id); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("Delete by non-owner: got %v, want common.ErrorNotFound", err)
	}
	if _, err := svc.AddTags(ctx, 8, id, []string{"x"}); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("AddTags by non-owner: got %v, want common.ErrorNotFound", err)
	}

	// The owner still sees the note untouched.
	got, err := svc.Get(ctx, 7, id)
	if err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
	if got.Note.Title != "private" {
		t.Errorf("title = %q after non-owner update attempt", got.Note.Title)
	}
}

func TestNoteServiceListFiltersArchived(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newNoteService()

	if _, err := svc.Create(ctx, 7, &models.Note{Title: "active"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, 7, &models.Note{Title: "archived", IsArchived: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, 8, &models.Note{Title: "someone else's"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, err := svc.List(ctx, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].Note.Title != "active" {
		t.Errorf("active list = %d items", len(active))
	}

	archived, err := svc.List(ctx, 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archived) != 1 || archived[0].Note.Title != "archived" {
		t.Errorf("archived list = %d items", len(archived))
	}
}

func TestNoteServiceUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newNoteService()

	created, err := svc.Create(ctx, 7, &models.Note{Title: "draft", Content: "body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	archived := true
	updated, err := svc.Update(ctx, 7, created.Note.ID, noterepo.UpdateParams{IsArchived: &archived})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Note.IsArchived {
		t.Error("archived flag not applied")
	}
	if updated.Note.Title != "draft" || updated.Note.Content != "body" {
		t.Error("nil patch fields must leave stored values untouched")
	}
}

// Repeated names, surrounding whitespace, and re-attachment are all no-ops:
// the tag set stays deduplicated by name.
func TestNoteServiceAddTagsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, tags := newNoteService()

	created, err := svc.Create(ctx, 7, &models.Note{Title: "tagged"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.AddTags(ctx, 7, created.Note.ID, []string{"work", "work", " home ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(got.Tags))
	}
	if got.Tags[0].Name != "home" || got.Tags[1].Name != "work" {
		t.Errorf("tags = [%s %s], want name order [home work]", got.Tags[0].Name, got.Tags[1].Name)
	}

	// Second application changes nothing.
	again, err := svc.AddTags(ctx, 7, created.Note.ID, []string{"work", "home"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again.Tags) != 2 {
		t.Errorf("got %d tags after re-adding, want 2", len(again.Tags))
	}
	if len(tags.tags) != 2 {
		t.Errorf("global tag set has %d entries, want 2", len(tags.tags))
	}
}

// Tags are global: a second note reuses the tag row instead of cloning it.
func TestNoteServiceTagsSharedAcrossNotes(t *testing.T) {
	ctx := context.Background()
	svc, _, tags := newNoteService()

	first, err := svc.Create(ctx, 7, &models.Note{Title: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(ctx, 7, &models.Note{Title: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.AddTags(ctx, 7, first.Note.ID, []string{"work"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddTags(ctx, 7, second.Note.ID, []string{"work"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tags.tags) != 1 {
		t.Errorf("global tag set has %d entries, want 1", len(tags.tags))
	}
}
