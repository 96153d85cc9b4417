package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"noteagent/internal/config"
	"noteagent/internal/domain/models"
	"noteagent/pkg/logging"
)

// RedisCache stores answers as JSON under a hash of the question, with a TTL
// so stale answers age out between rebuilds.
type RedisCache struct {
	client *redis.Client
	logger *logging.Logger
}

func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		_ = client.Close()
	}()
	return &RedisCache{
		client: client,
		logger: logging.NewLogger("answer_cache"),
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, question string) (models.Answer, bool) {
	raw, err := c.client.Get(ctx, key(question)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithTrace(ctx).Warn("Cache read failed", "error", err)
		}
		return models.Answer{}, false
	}

	var answer models.Answer
	if err := json.Unmarshal(raw, &answer); err != nil {
		c.logger.WithTrace(ctx).Warn("Cache entry corrupt, dropping", "error", err)
		c.client.Del(ctx, key(question))
		return models.Answer{}, false
	}
	return answer, true
}

func (c *RedisCache) Put(ctx context.Context, question string, answer models.Answer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(question), raw, config.AnswerCacheTTL).Err()
}

func key(question string) string {
	sum := sha256.Sum256([]byte(question))
	return "answer:" + hex.EncodeToString(sum[:])
}

var _ AnswerCache = (*RedisCache)(nil)
