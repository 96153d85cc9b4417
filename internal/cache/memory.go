package cache

import (
	"context"
	"sync"

	"noteagent/internal/domain/models"
)

// MemoryCache is the fallback used when redis is not reachable at startup.
type MemoryCache struct {
	mu      sync.RWMutex
	answers map[string]models.Answer
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		answers: make(map[string]models.Answer),
	}
}

func (c *MemoryCache) Get(ctx context.Context, question string) (models.Answer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.answers[question]
	return answer, ok
}

func (c *MemoryCache) Put(ctx context.Context, question string, answer models.Answer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[question] = answer
	return nil
}

var _ AnswerCache = (*MemoryCache)(nil)
