package problemcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/domain"
)

func newCache(t *testing.T) (*ProblemCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewProblemCache(client, time.Minute, logging.NewNopLogger()), mr
}

func TestSetThenGet(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	p := domain.NewProblem(uuid.New(), domain.ProblemInput{
		Title:      "Sum",
		Difficulty: domain.DifficultyEasy,
		TestCases:  []domain.TestCase{{Input: "1 2", ExpectedOutput: "3"}},
	})

	require.NoError(t, cache.Set(ctx, p))
	assert.True(t, mr.Exists("problem:"+p.ID.String()))
	assert.Equal(t, time.Minute, mr.TTL("problem:"+p.ID.String()))

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.TestCases, got.TestCases)
}

func TestMissReturnsNil(t *testing.T) {
	cache, _ := newCache(t)
	got, err := cache.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	p := &domain.Problem{ID: uuid.New(), Title: "Sum"}
	require.NoError(t, cache.Set(ctx, p))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, p.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidate(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	p := &domain.Problem{ID: uuid.New(), Title: "Sum"}
	require.NoError(t, cache.Set(ctx, p))

	require.NoError(t, cache.Invalidate(ctx, p.ID))
	assert.False(t, mr.Exists("problem:"+p.ID.String()))
}

func TestCorruptEntryIsDropped(t *testing.T) {
	cache, mr := newCache(t)
	id := uuid.New()
	require.NoError(t, mr.Set("problem:"+id.String(), "{not json"))

	got, err := cache.Get(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("problem:"+id.String()))
}

func TestUnavailableRedisReturnsError(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}
