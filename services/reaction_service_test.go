package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"photoshare-api/models"
	"photoshare-api/repositories"
)

func newReactionFixture(t *testing.T) (*ReactionService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	seedUser(t, store, "owner", "Owner")
	seedUser(t, store, "u1", "Ursula")
	seedUser(t, store, "u2", "Victor")
	seedPhoto(t, store, "p1", "owner")
	return NewReactionService(store, store, store, nil), store
}

func assertConsistent(t *testing.T, store *repositories.MemoryStore, photoID string) models.ReactionStats {
	t.Helper()
	ctx := context.Background()
	photo, _ := store.GetPhoto(ctx, photoID)
	reactions, _ := store.ListReactions(ctx, photoID, "")
	if want := models.StatsFromReactions(reactions); photo.ReactionStats != want {
		t.Fatalf("stored stats %+v do not match reactions %+v", photo.ReactionStats, want)
	}
	return photo.ReactionStats
}

func TestReact_Validation(t *testing.T) {
	svc, _ := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.React(ctx, "p1", "u1", "care"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown type: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.React(ctx, "missing", "u1", "like"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: error = %v, want ErrNotFound", err)
	}
}

func TestReact_ToggleRestoresStats(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	before := assertConsistent(t, store, "p1")

	added, err := svc.React(ctx, "p1", "u1", "like")
	if err != nil {
		t.Fatalf("React() error = %v", err)
	}
	if added.Action != models.ReactionAdded || added.ReactionType != models.ReactionLike {
		t.Errorf("first react = %+v, want added like", added)
	}
	if added.Stats.Like != 1 || added.Stats.Total != 1 {
		t.Errorf("stats after add = %+v", added.Stats)
	}

	removed, err := svc.React(ctx, "p1", "u1", "like")
	if err != nil {
		t.Fatalf("React() error = %v", err)
	}
	if removed.Action != models.ReactionRemoved {
		t.Errorf("second react action = %s, want removed", removed.Action)
	}
	if removed.Stats != before {
		t.Errorf("stats after toggle = %+v, want %+v", removed.Stats, before)
	}
	assertConsistent(t, store, "p1")

	status, _ := svc.GetUserReaction(ctx, "p1", "u1")
	if status.HasReaction {
		t.Error("reaction should be gone after toggling off")
	}
}

func TestReact_ChangeTypeRoundTrip(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.React(ctx, "p1", "u1", "love"); err != nil {
		t.Fatalf("React(love) error = %v", err)
	}

	updated, err := svc.React(ctx, "p1", "u1", "wow")
	if err != nil {
		t.Fatalf("React(wow) error = %v", err)
	}
	if updated.Action != models.ReactionUpdated || updated.ReactionType != models.ReactionWow {
		t.Errorf("update result = %+v", updated)
	}
	want := models.ReactionStats{Wow: 1, Total: 1}
	if updated.Stats != want {
		t.Errorf("stats after love->wow = %+v, want %+v", updated.Stats, want)
	}

	back, err := svc.React(ctx, "p1", "u1", "love")
	if err != nil {
		t.Fatalf("React(love) error = %v", err)
	}
	if back.Stats != (models.ReactionStats{Love: 1, Total: 1}) {
		t.Errorf("stats after wow->love = %+v", back.Stats)
	}
	assertConsistent(t, store, "p1")

	reactions, _ := store.ListReactions(ctx, "p1", "")
	if len(reactions) != 1 {
		t.Errorf("reactions = %d, want exactly one per user", len(reactions))
	}
}

func TestHahaScenarioTwoUsers(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.React(ctx, "p1", "u1", "haha"); err != nil {
		t.Fatalf("React() error = %v", err)
	}
	res, err := svc.React(ctx, "p1", "u2", "haha")
	if err != nil {
		t.Fatalf("React() error = %v", err)
	}
	if res.Stats.Haha != 2 || res.Stats.Total != 2 {
		t.Errorf("stats after two hahas = %+v", res.Stats)
	}

	removed, err := svc.Unreact(ctx, "p1", "u1")
	if err != nil {
		t.Fatalf("Unreact() error = %v", err)
	}
	if removed.RemovedType != models.ReactionHaha {
		t.Errorf("removed type = %s, want haha", removed.RemovedType)
	}
	if removed.Stats.Haha != 1 || removed.Stats.Total != 1 {
		t.Errorf("stats after unreact = %+v", removed.Stats)
	}
	assertConsistent(t, store, "p1")

	list, err := svc.GetReactions(ctx, "p1", "")
	if err != nil {
		t.Fatalf("GetReactions() error = %v", err)
	}
	if len(list.Reactions) != 1 || list.Reactions[0].UserID != "u2" {
		t.Errorf("remaining reactions = %+v", list.Reactions)
	}
}

func TestUnreact_NotFound(t *testing.T) {
	svc, _ := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.Unreact(ctx, "p1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("no reaction: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Unreact(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: error = %v, want ErrNotFound", err)
	}

	if _, err := svc.React(ctx, "p1", "u1", "sad"); err != nil {
		t.Fatalf("React() error = %v", err)
	}
	if _, err := svc.Unreact(ctx, "p1", "u1"); err != nil {
		t.Fatalf("Unreact() error = %v", err)
	}
	if _, err := svc.Unreact(ctx, "p1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second unreact: error = %v, want ErrNotFound", err)
	}
}

func TestUnreact_FloorsDriftedStats(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	if _, err := svc.React(ctx, "p1", "u1", "angry"); err != nil {
		t.Fatalf("React() error = %v", err)
	}
	// zero the cached counters behind the service's back
	_ = store.WithLockedPhoto(ctx, "p1", func(tx repositories.ReactionTx, _ *models.Photo) error {
		return tx.SaveStats("p1", models.ReactionStats{})
	})

	res, err := svc.Unreact(ctx, "p1", "u1")
	if err != nil {
		t.Fatalf("Unreact() error = %v", err)
	}
	if res.Stats.Angry != 0 || res.Stats.Total != 0 {
		t.Errorf("counters went negative: %+v", res.Stats)
	}
}

func TestGetReactions_FilterAndUsers(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	seedUser(t, store, "ghost", "Ghost")
	for user, kind := range map[string]string{"u1": "like", "u2": "love", "ghost": "like"} {
		if _, err := svc.React(ctx, "p1", user, kind); err != nil {
			t.Fatalf("React(%s) error = %v", user, err)
		}
	}
	// simulate a deleted account by reacting as an id with no user row
	if _, err := svc.React(ctx, "p1", "vanished", "like"); err != nil {
		t.Fatalf("React(vanished) error = %v", err)
	}

	all, err := svc.GetReactions(ctx, "p1", "")
	if err != nil {
		t.Fatalf("GetReactions() error = %v", err)
	}
	if len(all.Reactions) != 4 || all.Stats.Total != 4 || all.Stats.Like != 3 {
		t.Errorf("all reactions = %d, stats = %+v", len(all.Reactions), all.Stats)
	}

	likes, err := svc.GetReactions(ctx, "p1", "like")
	if err != nil {
		t.Fatalf("GetReactions(like) error = %v", err)
	}
	if len(likes.Reactions) != 3 {
		t.Errorf("like reactions = %d, want 3", len(likes.Reactions))
	}
	if likes.Stats != all.Stats {
		t.Error("filtered listing must still carry the full stats")
	}
	for _, r := range likes.Reactions {
		if r.Type != models.ReactionLike {
			t.Errorf("filter leaked %s", r.Type)
		}
		switch r.UserID {
		case "vanished":
			if r.User != nil {
				t.Errorf("vanished user resolved to %+v", r.User)
			}
		default:
			if r.User == nil || r.User.ID != r.UserID {
				t.Errorf("user not resolved for %s", r.UserID)
			}
		}
	}

	if _, err := svc.GetReactions(ctx, "p1", "care"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad filter: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.GetReactions(ctx, "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: error = %v, want ErrNotFound", err)
	}
}

func TestGetUserReaction(t *testing.T) {
	svc, _ := newReactionFixture(t)
	ctx := context.Background()

	status, err := svc.GetUserReaction(ctx, "p1", "u1")
	if err != nil {
		t.Fatalf("GetUserReaction() error = %v", err)
	}
	if status.HasReaction || status.Reaction != nil {
		t.Errorf("status before reacting = %+v", status)
	}

	if _, err := svc.React(ctx, "p1", "u1", "wow"); err != nil {
		t.Fatalf("React() error = %v", err)
	}
	status, _ = svc.GetUserReaction(ctx, "p1", "u1")
	if !status.HasReaction || status.Reaction == nil || status.Reaction.Type != models.ReactionWow {
		t.Errorf("status after reacting = %+v", status)
	}

	if _, err := svc.GetUserReaction(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: error = %v, want ErrNotFound", err)
	}
}

func TestRecountStats(t *testing.T) {
	svc, store := newReactionFixture(t)
	ctx := context.Background()

	_, _ = svc.React(ctx, "p1", "u1", "like")
	_, _ = svc.React(ctx, "p1", "u2", "sad")

	_, changed, err := svc.RecountStats(ctx, "p1")
	if err != nil {
		t.Fatalf("RecountStats() error = %v", err)
	}
	if changed {
		t.Error("consistent stats reported as changed")
	}

	_ = store.WithLockedPhoto(ctx, "p1", func(tx repositories.ReactionTx, _ *models.Photo) error {
		return tx.SaveStats("p1", models.ReactionStats{Like: 7, Total: 9})
	})

	repaired, err := svc.ReconcileAll(ctx)
	if err != nil {
		t.Fatalf("ReconcileAll() error = %v", err)
	}
	if repaired != 1 {
		t.Errorf("repaired = %d, want 1", repaired)
	}
	stats := assertConsistent(t, store, "p1")
	if stats != (models.ReactionStats{Like: 1, Sad: 1, Total: 2}) {
		t.Errorf("stats after repair = %+v", stats)
	}
}

func TestReact_ConcurrentUsers(t *testing.T) {
	store := repositories.NewMemoryStore()
	seedUser(t, store, "owner", "Owner")
	seedPhoto(t, store, "p1", "owner")
	svc := NewReactionService(store, store, store, nil)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := models.ReactionTypes[i%len(models.ReactionTypes)]
			if _, err := svc.React(ctx, "p1", fmt.Sprintf("user-%d", i), string(kind)); err != nil {
				t.Errorf("React() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	stats := assertConsistent(t, store, "p1")
	if stats.Total != n {
		t.Errorf("total = %d, want %d", stats.Total, n)
	}
}

func TestGetReactions_CachedUntilChanged(t *testing.T) {
	store := repositories.NewMemoryStore()
	seedUser(t, store, "owner", "Owner")
	seedUser(t, store, "u1", "Ursula")
	seedPhoto(t, store, "p1", "owner")
	c := newMemCache()
	svc := NewReactionService(store, store, store, c)
	ctx := context.Background()

	if _, err := svc.React(ctx, "p1", "u1", "like"); err != nil {
		t.Fatalf("React() error = %v", err)
	}
	for _, filter := range []string{"", "like"} {
		if _, err := svc.GetReactions(ctx, "p1", filter); err != nil {
			t.Fatalf("GetReactions(%q) error = %v", filter, err)
		}
	}

	// a write that skips the service is invisible until the next mutation
	_ = store.CreateUser(ctx, &models.User{ID: "u2", LoginName: "login-u2", FirstName: "Victor"})
	_ = store.WithLockedPhoto(ctx, "p1", func(tx repositories.ReactionTx, _ *models.Photo) error {
		return tx.CreateReaction(&models.Reaction{ID: "side", PhotoID: "p1", UserID: "u2", Type: models.ReactionLike})
	})
	cached, _ := svc.GetReactions(ctx, "p1", "")
	if len(cached.Reactions) != 1 {
		t.Fatalf("cached listing = %d reactions, want 1", len(cached.Reactions))
	}

	if _, err := svc.React(ctx, "p1", "u1", "like"); err != nil {
		t.Fatalf("React() toggle error = %v", err)
	}
	if n := c.len(); n != 1 {
		t.Errorf("cache holds %d keys after invalidation, want only the generation", n)
	}
	fresh, _ := svc.GetReactions(ctx, "p1", "")
	if len(fresh.Reactions) != 1 || fresh.Reactions[0].UserID != "u2" {
		t.Errorf("fresh listing = %+v", fresh.Reactions)
	}
}

// racingReactions runs mutate once, right after the first listing snapshot
// has been read.
type racingReactions struct {
	ReactionStore
	once   sync.Once
	mutate func()
}

func (r *racingReactions) ListReactions(ctx context.Context, photoID string, filter models.ReactionType) ([]models.Reaction, error) {
	reactions, err := r.ReactionStore.ListReactions(ctx, photoID, filter)
	r.once.Do(r.mutate)
	return reactions, err
}

func TestGetReactions_FillRacingMutationIsNotServed(t *testing.T) {
	store := repositories.NewMemoryStore()
	seedUser(t, store, "owner", "Owner")
	seedUser(t, store, "u1", "Ursula")
	seedPhoto(t, store, "p1", "owner")
	ctx := context.Background()

	racing := &racingReactions{ReactionStore: store}
	svc := NewReactionService(store, racing, store, newMemCache())
	racing.mutate = func() {
		if _, err := svc.React(ctx, "p1", "u1", "wow"); err != nil {
			t.Errorf("React() error = %v", err)
		}
	}

	stale, err := svc.GetReactions(ctx, "p1", "")
	if err != nil {
		t.Fatalf("GetReactions() error = %v", err)
	}
	if len(stale.Reactions) != 0 {
		t.Fatalf("first listing = %d reactions, want the pre-mutation snapshot", len(stale.Reactions))
	}

	after, err := svc.GetReactions(ctx, "p1", "")
	if err != nil {
		t.Fatalf("GetReactions() error = %v", err)
	}
	if len(after.Reactions) != 1 || after.Stats.Wow != 1 || after.Stats.Total != 1 {
		t.Errorf("listing after mutation = %d reactions, stats %+v", len(after.Reactions), after.Stats)
	}
}
