package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheRepository - кеш в памяти для запуска без Redis.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]cacheEntry
}

func NewMemoryCacheRepository() CacheRepositoryInterface {
	return &MemoryCacheRepository{now: time.Now, items: make(map[string]cacheEntry)}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.items[key]
	if !ok || r.expired(entry) {
		delete(r.items, key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		str = fmt.Sprint(v)
	}

	entry := cacheEntry{value: str}
	if expiration > 0 {
		entry.expiresAt = r.now().Add(expiration)
	}

	r.mu.Lock()
	r.items[key] = entry
	r.mu.Unlock()
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.items, key)
	}
	return nil
}

func (r *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if entry, ok := r.items[key]; ok && !r.expired(entry) {
		parsed, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("значение %q не число: %w", key, err)
		}
		current = parsed
	}
	current++
	r.items[key] = cacheEntry{value: strconv.FormatInt(current, 10)}
	return current, nil
}

func (r *MemoryCacheRepository) expired(entry cacheEntry) bool {
	return !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt)
}
