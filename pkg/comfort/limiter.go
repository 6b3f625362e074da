package comfort

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-chip rate limiters: chip_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(chipID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[chipID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[chipID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(chipID string, chipRate rate.Limit, chipBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[chipID] = rate.NewLimiter(chipRate, chipBurst)
}
