package repositories

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"
	"photoshare-api/models"
)

// MemoryStore keeps every table in process memory. It enforces the same
// unique keys as the SQL schema and serializes all access with one mutex.
// It backs the "memory" database driver and the package tests.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[string]models.User
	friendships map[string]models.Friendship
	photos      map[string]models.Photo
	comments    map[string]models.Comment
	reactions   map[string]models.Reaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]models.User),
		friendships: make(map[string]models.Friendship),
		photos:      make(map[string]models.Photo),
		comments:    make(map[string]models.Comment),
		reactions:   make(map[string]models.Reaction),
	}
}

// Users

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByLoginName(_ context.Context, loginName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.LoginName == loginName {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []models.User{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstName != users[j].FirstName {
			return users[i].FirstName < users[j].FirstName
		}
		return users[i].LastName < users[j].LastName
	})
	return users, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range s.users {
		if existing.LoginName == user.LoginName {
			return gorm.ErrDuplicatedKey
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Location = user.Location
	existing.Description = user.Description
	existing.Occupation = user.Occupation
	existing.Avatar = user.Avatar
	existing.AvatarKey = user.AvatarKey
	existing.Email = user.Email
	s.users[user.ID] = existing
	return nil
}

// Friendships

func (s *MemoryStore) GetFriendship(_ context.Context, id string) (*models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.friendships[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (s *MemoryStore) FindBetween(_ context.Context, a, b string) (*models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.friendships {
		if (f.RequesterID == a && f.RecipientID == b) || (f.RequesterID == b && f.RecipientID == a) {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateFriendship(_ context.Context, friendship *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friendships[friendship.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, f := range s.friendships {
		if f.RequesterID == friendship.RequesterID && f.RecipientID == friendship.RecipientID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.friendships[friendship.ID] = *friendship
	return nil
}

func (s *MemoryStore) Transition(_ context.Context, friendship *models.Friendship, from models.FriendshipStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.friendships[friendship.ID]
	if !ok || existing.Status != from {
		return false, nil
	}
	for id, f := range s.friendships {
		if id != friendship.ID && f.RequesterID == friendship.RequesterID && f.RecipientID == friendship.RecipientID {
			return false, gorm.ErrDuplicatedKey
		}
	}
	existing.RequesterID = friendship.RequesterID
	existing.RecipientID = friendship.RecipientID
	existing.Status = friendship.Status
	existing.CreatedAt = friendship.CreatedAt
	existing.UpdatedAt = friendship.UpdatedAt
	s.friendships[friendship.ID] = existing
	return true, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	return s.filterFriendships(func(f models.Friendship) bool {
		return f.Involves(userID) && f.Status == status
	}, func(a, b models.Friendship) bool { return a.UpdatedAt.After(b.UpdatedAt) }), nil
}

func (s *MemoryStore) ListIncoming(_ context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	return s.filterFriendships(func(f models.Friendship) bool {
		return f.RecipientID == userID && f.Status == status
	}, func(a, b models.Friendship) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (s *MemoryStore) ListOutgoing(_ context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	return s.filterFriendships(func(f models.Friendship) bool {
		return f.RequesterID == userID && f.Status == status
	}, func(a, b models.Friendship) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (s *MemoryStore) filterFriendships(keep func(models.Friendship) bool, less func(a, b models.Friendship) bool) []models.Friendship {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Friendship{}
	for _, f := range s.friendships {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Photos and comments

func (s *MemoryStore) GetPhoto(_ context.Context, id string) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[id]
	if !ok {
		return nil, nil
	}
	return &photo, nil
}

func (s *MemoryStore) ListPhotos(_ context.Context) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := make([]models.Photo, 0, len(s.photos))
	for _, photo := range s.photos {
		photo.Comments = s.commentsOf(photo.ID)
		photo.Reactions = s.reactionsOf(photo.ID, "")
		photos = append(photos, photo)
	}
	sortPhotosNewestFirst(photos)
	return photos, nil
}

func (s *MemoryStore) ListPhotosByUser(_ context.Context, userID string) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := []models.Photo{}
	for _, photo := range s.photos {
		if photo.UserID != userID {
			continue
		}
		photo.Comments = s.commentsOf(photo.ID)
		photos = append(photos, photo)
	}
	sortPhotosNewestFirst(photos)
	return photos, nil
}

func (s *MemoryStore) ListPhotoIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.photos))
	for id := range s.photos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) CreatePhoto(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.photos[photo.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	stored := *photo
	stored.Comments = nil
	stored.Reactions = nil
	s.photos[photo.ID] = stored
	return nil
}

func (s *MemoryStore) DeletePhoto(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cid, c := range s.comments {
		if c.PhotoID == id {
			delete(s.comments, cid)
		}
	}
	for rid, r := range s.reactions {
		if r.PhotoID == id {
			delete(s.reactions, rid)
		}
	}
	delete(s.photos, id)
	return nil
}

func (s *MemoryStore) AddComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[comment.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryStore) ListComments(_ context.Context, photoID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commentsOf(photoID), nil
}

func (s *MemoryStore) commentsOf(photoID string) []models.Comment {
	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.PhotoID == photoID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].DateTime.Before(comments[j].DateTime)
	})
	return comments
}

func sortPhotosNewestFirst(photos []models.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].DateTime.After(photos[j].DateTime)
	})
}

// Reactions

// WithLockedPhoto holds the store mutex for the duration of fn. Changes made
// through the tx are rolled back when fn returns an error.
func (s *MemoryStore) WithLockedPhoto(_ context.Context, photoID string, fn func(tx ReactionTx, photo *models.Photo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, undo: []func(){}}
	var photo *models.Photo
	if p, ok := s.photos[photoID]; ok {
		photo = &p
	}
	if err := fn(tx, photo); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		return err
	}
	return nil
}

func (s *MemoryStore) FindReaction(_ context.Context, photoID, userID string) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findReaction(photoID, userID), nil
}

func (s *MemoryStore) ListReactions(_ context.Context, photoID string, filter models.ReactionType) ([]models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reactionsOf(photoID, filter), nil
}

func (s *MemoryStore) ListReactedPhotoIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for _, r := range s.reactions {
		if r.UserID == userID {
			ids = append(ids, r.PhotoID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) findReaction(photoID, userID string) *models.Reaction {
	for _, r := range s.reactions {
		if r.PhotoID == photoID && r.UserID == userID {
			found := r
			return &found
		}
	}
	return nil
}

func (s *MemoryStore) reactionsOf(photoID string, filter models.ReactionType) []models.Reaction {
	reactions := []models.Reaction{}
	for _, r := range s.reactions {
		if r.PhotoID == photoID && (filter == "" || r.Type == filter) {
			reactions = append(reactions, r)
		}
	}
	sort.SliceStable(reactions, func(i, j int) bool {
		return reactions[i].DateTime.After(reactions[j].DateTime)
	})
	return reactions
}

// memoryTx mutates the store directly; the caller already holds s.mu.
type memoryTx struct {
	store *MemoryStore
	undo  []func()
}

func (t *memoryTx) FindReaction(photoID, userID string) (*models.Reaction, error) {
	return t.store.findReaction(photoID, userID), nil
}

func (t *memoryTx) ListReactions(photoID string) ([]models.Reaction, error) {
	return t.store.reactionsOf(photoID, ""), nil
}

func (t *memoryTx) CreateReaction(reaction *models.Reaction) error {
	if t.store.findReaction(reaction.PhotoID, reaction.UserID) != nil {
		return gorm.ErrDuplicatedKey
	}
	if _, ok := t.store.reactions[reaction.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	t.store.reactions[reaction.ID] = *reaction
	id := reaction.ID
	t.undo = append(t.undo, func() { delete(t.store.reactions, id) })
	return nil
}

func (t *memoryTx) UpdateReaction(reaction *models.Reaction) error {
	prev, ok := t.store.reactions[reaction.ID]
	if !ok {
		return nil
	}
	next := prev
	next.Type = reaction.Type
	next.DateTime = reaction.DateTime
	t.store.reactions[reaction.ID] = next
	t.undo = append(t.undo, func() { t.store.reactions[prev.ID] = prev })
	return nil
}

func (t *memoryTx) DeleteReaction(id string) error {
	prev, ok := t.store.reactions[id]
	if !ok {
		return nil
	}
	delete(t.store.reactions, id)
	t.undo = append(t.undo, func() { t.store.reactions[prev.ID] = prev })
	return nil
}

func (t *memoryTx) SaveStats(photoID string, stats models.ReactionStats) error {
	photo, ok := t.store.photos[photoID]
	if !ok {
		return nil
	}
	prev := photo.ReactionStats
	photo.ReactionStats = stats
	t.store.photos[photoID] = photo
	t.undo = append(t.undo, func() {
		p := t.store.photos[photoID]
		p.ReactionStats = prev
		t.store.photos[photoID] = p
	})
	return nil
}
