package cache

import (
	"context"

	"noteagent/internal/domain/models"
)

// AnswerCache remembers full-pipeline answers by exact question. Cache
// failures are never surfaced to the caller; a miss is always a safe answer.
type AnswerCache interface {
	Get(ctx context.Context, question string) (models.Answer, bool)
	Put(ctx context.Context, question string, answer models.Answer) error
}
