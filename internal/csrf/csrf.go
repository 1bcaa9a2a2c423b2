// Package csrf issues per-caller tokens that unsafe requests must echo back.
package csrf

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const HeaderName = "X-CSRF-Token"

// maxTokensPerCaller bounds the live tokens kept for one caller. Callers behind
// one address (a NAT, several tabs) each hold their own token.
const maxTokensPerCaller = 256

type Store interface {
	Add(ctx context.Context, caller, token string, ttl time.Duration) error
	Has(ctx context.Context, caller, token string) (bool, error)
}

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Issue creates a fresh token for the caller. Earlier tokens stay valid until they expire.
func (m *Manager) Issue(ctx context.Context, caller string) (string, error) {
	token := uuid.NewString()
	if err := m.store.Add(ctx, caller, token, m.ttl); err != nil {
		return "", fmt.Errorf("csrf.Issue: %w", err)
	}
	return token, nil
}

// Validate reports whether token is a live token of the caller.
func (m *Manager) Validate(ctx context.Context, caller, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	ok, err := m.store.Has(ctx, caller, token)
	if err != nil {
		return false, fmt.Errorf("csrf.Validate: %w", err)
	}
	return ok, nil
}

// MemoryStore keeps tokens in process, each with its own expiry. Expired tokens are dropped by Sweep.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]map[string]time.Time
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Add(_ context.Context, caller, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tokens[caller]
	if live == nil {
		live = make(map[string]time.Time)
		s.tokens[caller] = live
	}
	if len(live) >= maxTokensPerCaller {
		evictOldest(live)
	}
	live[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Has(_ context.Context, caller, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	found := false
	for t, expires := range s.tokens[caller] {
		if now.Before(expires) && subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			found = true
		}
	}
	return found, nil
}

func evictOldest(live map[string]time.Time) {
	var oldest string
	var at time.Time
	for t, expires := range live {
		if oldest == "" || expires.Before(at) {
			oldest, at = t, expires
		}
	}
	delete(live, oldest)
}

// Sweep removes expired tokens and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for caller, live := range s.tokens {
		for t, expires := range live {
			if !now.Before(expires) {
				delete(live, t)
				n++
			}
		}
		if len(live) == 0 {
			delete(s.tokens, caller)
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

const redisPrefix = "csrf:"

// RedisStore keeps one key per token so every token expires on its own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(caller, token string) string {
	return redisPrefix + caller + ":" + token
}

func (s *RedisStore) Add(ctx context.Context, caller, token string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(caller, token), 1, ttl).Err()
}

func (s *RedisStore) Has(ctx context.Context, caller, token string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(caller, token)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
