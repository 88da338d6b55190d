package cache

import (
	"context"
	"errors"
	"testing"
)

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"simple key", "test", "photoshare:test"},
		{"key with colon", "reactions:abc:all", "photoshare:reactions:abc:all"},
		{"empty key", "", "photoshare:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest map[string]int
	if err := c.GetJSON(ctx, "k", &dest); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("GetJSON() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.SetJSON(ctx, "k", 1); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("SetJSON() error = %v, want ErrCacheDisabled", err)
	}
	if _, err := c.Incr(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Incr() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Delete() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil cache should be a no-op, got %v", err)
	}
}
