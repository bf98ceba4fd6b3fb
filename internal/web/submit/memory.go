package submit

import (
	"context"
	"sync"
	"time"
)

var _ TokenStore = (*MemoryStore)(nil)

type MemoryStore struct {
	mu            sync.Mutex
	claims        map[string]time.Time
	now           func() time.Time
	cleanupCancel context.CancelFunc
}

// NewMemoryStore returns a process-local store that sweeps expired claims
// every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &MemoryStore{
		claims:        make(map[string]time.Time),
		now:           time.Now,
		cleanupCancel: cancel,
	}
	go s.cleanupLoop(ctx, cleanupInterval)
	return s
}

func (s *MemoryStore) Claim(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.claims[token]; ok && now.Before(exp) {
		return ErrAlreadyClaimed
	}
	s.claims[token] = now.Add(ttl)
	return nil
}

func (s *MemoryStore) Release(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.claims, token)
	return nil
}

func (s *MemoryStore) Close() error {
	if s.cleanupCancel != nil {
		s.cleanupCancel()
	}
	return nil
}

func (s *MemoryStore) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, exp := range s.claims {
		if !now.Before(exp) {
			delete(s.claims, token)
		}
	}
}
