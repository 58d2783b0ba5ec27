package ratelimiter

import (
	"sync"
	"time"
)

type entry struct {
	value     int
	expiresAt time.Time
}

type InMemory struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
	once    sync.Once
}

func NewInMemory() GetterSetter {
	im := &InMemory{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}

	go im.janitor()

	return im
}

func (im *InMemory) Get(key string) (int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	e, ok := im.entries[key]
	if !ok {
		return 0, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return 0, ErrCacheMiss
	}

	return e.value, nil
}

func (im *InMemory) Set(key string, value int) error {
	return im.SetWithExpiration(key, value, 0)
}

func (im *InMemory) SetWithExpiration(key string, value int, expiration time.Duration) error {
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	im.mu.Lock()
	im.entries[key] = entry{value: value, expiresAt: expiresAt}
	im.mu.Unlock()

	return nil
}

func (im *InMemory) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			im.mu.Lock()
			for key, e := range im.entries {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(im.entries, key)
				}
			}
			im.mu.Unlock()
		case <-im.stop:
			return
		}
	}
}

func (im *InMemory) Close() error {
	im.once.Do(func() {
		close(im.stop)
	})
	return nil
}
