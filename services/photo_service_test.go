package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"photoshare-api/repositories"
)

func newPhotoFixture(t *testing.T) (*PhotoService, *repositories.MemoryStore, *memStorage) {
	t.Helper()
	store := repositories.NewMemoryStore()
	storage := newMemStorage()
	seedUser(t, store, "owner", "Olga")
	seedUser(t, store, "guest", "Gus")
	return NewPhotoService(store, store, storage, nil), store, storage
}

func TestUploadAndList(t *testing.T) {
	svc, _, storage := newPhotoFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	older, err := svc.Upload(ctx, "owner", " Sunset ", pngBytes)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if older.Title != "Sunset" || older.Comments == nil {
		t.Errorf("upload response = %+v", older)
	}
	newer, err := svc.Upload(ctx, "owner", "", pngBytes)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(storage.files) != 2 {
		t.Errorf("stored files = %d, want 2", len(storage.files))
	}

	if _, err := svc.AddComment(ctx, older.ID, "guest", "  nice  "); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	photos, err := svc.ListByUser(ctx, "owner")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(photos) != 2 || photos[0].ID != newer.ID || photos[1].ID != older.ID {
		t.Fatalf("ListByUser() order = %+v, want newest first", photos)
	}
	comments := photos[1].Comments
	if len(comments) != 1 || comments[0].Comment != "nice" {
		t.Fatalf("comments = %+v", comments)
	}
	if comments[0].User == nil || comments[0].User.FirstName != "Gus" {
		t.Errorf("comment author = %+v", comments[0].User)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll() = %d photos, want 2", len(all))
	}

	if _, err := svc.ListByUser(ctx, "guest"); !errors.Is(err, ErrNotFound) {
		t.Errorf("user without photos: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.ListByUser(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: error = %v, want ErrNotFound", err)
	}
}

func TestUpload_Rejects(t *testing.T) {
	svc, _, _ := newPhotoFixture(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "owner", "doc", []byte("%PDF-1.4 not an image")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("non-image: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Upload(ctx, "owner", "empty", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Upload(ctx, "nobody", "x", pngBytes); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: error = %v, want ErrNotFound", err)
	}
}

func TestComments(t *testing.T) {
	svc, store, _ := newPhotoFixture(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1", "owner")

	tests := []struct {
		name    string
		photoID string
		userID  string
		text    string
		want    error
	}{
		{"blank", "p1", "guest", "   ", ErrInvalidArgument},
		{"unknown user", "p1", "nobody", "hi", ErrNotFound},
		{"unknown photo", "missing", "guest", "hi", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddComment(ctx, tt.photoID, tt.userID, tt.text); !errors.Is(err, tt.want) {
				t.Errorf("AddComment() error = %v, want %v", err, tt.want)
			}
		})
	}

	created, err := svc.AddComment(ctx, "p1", "guest", "first!")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if created.User == nil || created.User.ID != "guest" {
		t.Errorf("created comment author = %+v", created.User)
	}

	list, err := svc.ListComments(ctx, "p1")
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("ListComments() = %+v", list)
	}
	if _, err := svc.ListComments(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: error = %v, want ErrNotFound", err)
	}
}

func TestDeletePhoto(t *testing.T) {
	svc, store, storage := newPhotoFixture(t)
	ctx := context.Background()

	photo, err := svc.Upload(ctx, "owner", "mine", pngBytes)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	reactions := NewReactionService(store, store, store, nil)
	if _, err := reactions.React(ctx, photo.ID, "guest", "love"); err != nil {
		t.Fatalf("React() error = %v", err)
	}

	if err := svc.Delete(ctx, photo.ID, "guest"); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete by non-owner: error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, photo.ID, "owner"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(storage.files) != 0 {
		t.Errorf("file left behind: %v", storage.files)
	}
	if left, _ := store.ListReactions(ctx, photo.ID, ""); len(left) != 0 {
		t.Errorf("reactions left behind: %+v", left)
	}
	if err := svc.Delete(ctx, photo.ID, "owner"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}
