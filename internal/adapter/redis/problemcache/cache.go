package problemcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
)

const problemKeyPrefix = "problem:"

var _ secondary.ProblemCache = (*ProblemCache)(nil)

// ProblemCache keeps JSON snapshots of problems in Redis.
type ProblemCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

func NewProblemCache(redisClient *redis.Client, ttl time.Duration, logger primary.Logger) *ProblemCache {
	return &ProblemCache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func problemKey(id uuid.UUID) string {
	return problemKeyPrefix + id.String()
}

func (c *ProblemCache) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	data, err := c.redisClient.Get(ctx, problemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached problem: %w", err)
	}

	var problem domain.Problem
	if err := json.Unmarshal(data, &problem); err != nil {
		c.logger.Warn("Dropping unreadable cached problem", "problem_id", id, "error", err)
		_ = c.Invalidate(ctx, id)
		return nil, nil
	}
	return &problem, nil
}

func (c *ProblemCache) Set(ctx context.Context, problem *domain.Problem) error {
	data, err := json.Marshal(problem)
	if err != nil {
		return fmt.Errorf("failed to marshal problem: %w", err)
	}
	if err := c.redisClient.Set(ctx, problemKey(problem.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache problem: %w", err)
	}
	return nil
}

func (c *ProblemCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.redisClient.Del(ctx, problemKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached problem: %w", err)
	}
	return nil
}
