package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"photoshare-api/cache"
	"photoshare-api/models"
	"photoshare-api/repositories"
)

// memStorage is a FileStorage that keeps uploads in a map.
type memStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	counter int
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) Save(_ context.Context, folder, prefix string, data []byte) (*StoredFile, error) {
	mtype, err := sniffImage(data, 5*1024*1024)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	key := fmt.Sprintf("%s/%s-%d%s", folder, prefix, m.counter, mtype.Extension())
	m.files[key] = data
	return &StoredFile{URL: "/uploads/" + key, Key: key, ContentType: mtype.String()}, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}

// memCache is a ReactionCache that stores JSON in a map.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if raw, ok := m.data[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	m.data[key], _ = json.Marshal(n)
	return n, nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func seedUser(t *testing.T, store *repositories.MemoryStore, id, first string) models.User {
	t.Helper()
	user := models.User{
		ID:        id,
		LoginName: "login-" + id,
		Password:  "x",
		FirstName: first,
		LastName:  "Test",
		Avatar:    "/uploads/avatars/" + id + ".png",
		CreatedAt: time.Now(),
	}
	if err := store.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}

func seedPhoto(t *testing.T, store *repositories.MemoryStore, id, ownerID string) models.Photo {
	t.Helper()
	photo := models.Photo{
		ID:       id,
		Title:    "photo " + id,
		FileName: "/uploads/photos/" + id + ".png",
		UserID:   ownerID,
		DateTime: time.Now(),
	}
	if err := store.CreatePhoto(context.Background(), &photo); err != nil {
		t.Fatalf("seed photo %s: %v", id, err)
	}
	return photo
}
