package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"photoshare-api/models"
	"photoshare-api/repositories"
)

type recordingMailer struct {
	sent chan string
}

func (m *recordingMailer) SendWelcomeEmail(email, _ string) error {
	m.sent <- email
	return nil
}

func newUserFixture(t *testing.T, mailer WelcomeMailer) (*UserService, *repositories.MemoryStore, *memStorage) {
	t.Helper()
	store := repositories.NewMemoryStore()
	storage := newMemStorage()
	svc := NewUserService(store, NewTokenService("secret", time.Hour), storage, mailer, nil)
	return svc, store, storage
}

func TestRegisterAndLogin(t *testing.T) {
	mailer := &recordingMailer{sent: make(chan string, 1)}
	svc, _, _ := newUserFixture(t, mailer)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		LoginName: " ann ",
		Password:  "s3cret!",
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.LoginName != "ann" {
		t.Errorf("login name = %q, want trimmed", user.LoginName)
	}
	if user.Password == "s3cret!" {
		t.Error("password stored in clear text")
	}

	select {
	case email := <-mailer.sent:
		if email != "ann@example.com" {
			t.Errorf("welcome email sent to %q", email)
		}
	case <-time.After(time.Second):
		t.Error("welcome email not sent")
	}

	if _, err := svc.Register(ctx, RegisterInput{LoginName: "ann", Password: "x", FirstName: "A"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate register: error = %v, want ErrConflict", err)
	}

	token, loggedIn, err := svc.Login(ctx, "ann", "s3cret!")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in as %s, want %s", loggedIn.ID, user.ID)
	}
	if id, err := svc.tokens.Parse(token); err != nil || id != user.ID {
		t.Errorf("token parses to %q, %v", id, err)
	}

	if _, _, err := svc.Login(ctx, "ann", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong password: error = %v, want ErrUnauthorized", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "x"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown user: error = %v, want ErrUnauthorized", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newUserFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"no login", RegisterInput{Password: "x", FirstName: "A"}},
		{"no password", RegisterInput{LoginName: "a", FirstName: "A"}},
		{"no first name", RegisterInput{LoginName: "a", Password: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.in); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Register() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, store, _ := newUserFixture(t, nil)
	ctx := context.Background()
	seedUser(t, store, "u1", "Una")

	occupation := " Photographer "
	user, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Occupation: &occupation})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Occupation != "Photographer" || user.FirstName != "Una" {
		t.Errorf("updated user = %+v", user)
	}

	empty := ""
	if _, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{FirstName: &empty}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank first name: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.UpdateProfile(ctx, "nobody", ProfileUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	svc, store, storage := newUserFixture(t, nil)
	ctx := context.Background()
	seedUser(t, store, "u1", "Una")

	first, err := svc.UpdateAvatar(ctx, "u1", pngBytes)
	if err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	firstKey := first.AvatarKey
	if !storage.has(firstKey) {
		t.Fatalf("avatar %s not stored", firstKey)
	}

	second, err := svc.UpdateAvatar(ctx, "u1", pngBytes)
	if err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	if storage.has(firstKey) {
		t.Error("previous avatar was not removed")
	}
	if second.Avatar == first.Avatar {
		t.Error("avatar URL did not change")
	}

	if _, err := svc.UpdateAvatar(ctx, "u1", []byte("plain text")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("non-image: error = %v, want ErrInvalidArgument", err)
	}
}

func TestProfileChangesRefreshCachedReactions(t *testing.T) {
	store := repositories.NewMemoryStore()
	seedUser(t, store, "owner", "Owner")
	seedUser(t, store, "u1", "Ursula")
	seedPhoto(t, store, "p1", "owner")
	seedPhoto(t, store, "p2", "owner")
	ctx := context.Background()

	reactions := NewReactionService(store, store, store, newMemCache())
	svc := NewUserService(store, NewTokenService("secret", time.Hour), newMemStorage(), nil, reactions)

	for _, photoID := range []string{"p1", "p2"} {
		if _, err := reactions.React(ctx, photoID, "u1", "love"); err != nil {
			t.Fatalf("React(%s) error = %v", photoID, err)
		}
	}
	reactorOf := func(photoID, filter string) *models.Reactor {
		t.Helper()
		listing, err := reactions.GetReactions(ctx, photoID, filter)
		if err != nil {
			t.Fatalf("GetReactions(%s, %q) error = %v", photoID, filter, err)
		}
		if len(listing.Reactions) != 1 || listing.Reactions[0].User == nil {
			t.Fatalf("listing of %s = %+v", photoID, listing.Reactions)
		}
		return listing.Reactions[0].User
	}
	for _, photoID := range []string{"p1", "p2"} {
		if got := reactorOf(photoID, "love").FirstName; got != "Ursula" {
			t.Fatalf("warm listing name = %q", got)
		}
		reactorOf(photoID, "")
	}

	name := "Ulla"
	if _, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{FirstName: &name}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	for _, photoID := range []string{"p1", "p2"} {
		for _, filter := range []string{"", "love"} {
			if got := reactorOf(photoID, filter).FirstName; got != "Ulla" {
				t.Errorf("%s/%q name = %q, want Ulla", photoID, filter, got)
			}
		}
	}

	updated, err := svc.UpdateAvatar(ctx, "u1", pngBytes)
	if err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	if got := reactorOf("p1", "").Avatar; got != updated.Avatar {
		t.Errorf("cached avatar = %q, want %q", got, updated.Avatar)
	}
}
