package faq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// AnswerCache keeps generated answers in redis so repeated questions do
// not pay for another model round trip.
type AnswerCache struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	if client == nil {
		panic("faq: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &AnswerCache{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("hospital.internal.faq.cache"),
	}
}

// Get returns the cached answer for query, if present.
func (c *AnswerCache) Get(ctx context.Context, query string) (string, bool, error) {
	ctx, span := c.tracer.Start(ctx, "faq.cache_get")
	defer span.End()

	answer, err := c.redis.Get(ctx, answerKey(query)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		span.RecordError(err)
		return "", false, fmt.Errorf("faq: cache read: %w", err)
	}
	return answer, true, nil
}

// Set stores the answer for query until the TTL expires.
func (c *AnswerCache) Set(ctx context.Context, query, answer string) error {
	ctx, span := c.tracer.Start(ctx, "faq.cache_set")
	defer span.End()

	if err := c.redis.Set(ctx, answerKey(query), answer, c.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("faq: cache write: %w", err)
	}
	return nil
}

func answerKey(query string) string {
	return "faq_answer:" + strings.ToLower(strings.TrimSpace(query))
}
