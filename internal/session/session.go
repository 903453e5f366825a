// Package session persists the small key-value state that survives a
// restart: the auth token, the serialized session user, and the theme mode.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/redis/go-redis/v9"
)

const (
	keyToken = "token"
	keyUser  = "user"
	keyTheme = "theme"
)

// ErrNotFound is returned for keys that were never set.
var ErrNotFound = errors.New("session key not found")

// Store is the key-value contract the core needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisStore keeps session state in Redis under a common prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis connects and pings; an unreachable Redis is an error so the
// caller can fall back to the in-memory store.
func NewRedis(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, prefix: "botdeck:session:"}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// MemoryStore is the fallback when Redis is not available. Contents live
// only for the process lifetime.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// LoadSeed reads the persisted session state once, at store construction.
// Missing or corrupt values degrade to an unauthenticated seed.
func LoadSeed(ctx context.Context, s Store) store.Seed {
	var seed store.Seed

	if token, err := s.Get(ctx, keyToken); err == nil {
		seed.Token = token
	}
	if raw, err := s.Get(ctx, keyUser); err == nil {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			seed.User = &user
		} else {
			log.Printf("ignoring corrupt session user record: %v", err)
		}
	}
	if theme, err := s.Get(ctx, keyTheme); err == nil {
		seed.Theme = domain.ThemeMode(theme)
	}
	return seed
}

// Hook returns a store hook that mirrors auth and theme changes into the
// session cache. Persistence failures are logged, never surfaced; the cache
// is best-effort.
func Hook(ctx context.Context, s Store) store.Hook {
	persistSession := func(sess domain.Session) {
		if err := s.Set(ctx, keyToken, sess.Token); err != nil {
			log.Printf("persist token: %v", err)
		}
		raw, err := json.Marshal(sess.User)
		if err != nil {
			log.Printf("encode session user: %v", err)
			return
		}
		if err := s.Set(ctx, keyUser, string(raw)); err != nil {
			log.Printf("persist user: %v", err)
		}
	}

	return func(ev store.Event) {
		switch ev := ev.(type) {
		case store.LoginSucceeded:
			persistSession(ev.Session)
		case store.RegisterSucceeded:
			persistSession(ev.Session)
		case store.LoggedOut:
			if err := s.Delete(ctx, keyToken); err != nil {
				log.Printf("clear token: %v", err)
			}
			if err := s.Delete(ctx, keyUser); err != nil {
				log.Printf("clear user: %v", err)
			}
		case store.ThemeSet:
			if err := s.Set(ctx, keyTheme, string(ev.Mode)); err != nil {
				log.Printf("persist theme: %v", err)
			}
		case store.ProfileUpdated:
			raw, err := s.Get(ctx, keyUser)
			if err != nil {
				return
			}
			var user domain.User
			if err := json.Unmarshal([]byte(raw), &user); err != nil {
				return
			}
			if ev.Name != "" {
				user.Name = ev.Name
			}
			if ev.Email != "" {
				user.Email = ev.Email
			}
			updated, err := json.Marshal(user)
			if err != nil {
				return
			}
			if err := s.Set(ctx, keyUser, string(updated)); err != nil {
				log.Printf("persist user: %v", err)
			}
		}
	}
}
