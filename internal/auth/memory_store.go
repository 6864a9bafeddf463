package auth

import (
	"context"
	"sync"
	"time"
)

type memoryToken struct {
	username  string
	expiresAt time.Time
}

// MemoryStore - хранилище токенов для запуска без Redis.
type MemoryStore struct {
	mtx    sync.Mutex
	ttl    time.Duration
	tokens map[string]memoryToken
	now    func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &MemoryStore{
		ttl:    ttl,
		tokens: make(map[string]memoryToken),
		now:    time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.tokens[token] = memoryToken{username: username, expiresAt: s.now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(t.expiresAt) {
		delete(s.tokens, token)
		return "", false, nil
	}
	return t.username, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.tokens, token)
	return nil
}

// Sweep удаляет истёкшие токены и возвращает их число.
func (s *MemoryStore) Sweep() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := s.now()
	removed := 0
	for token, t := range s.tokens {
		if !now.Before(t.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}
