package ratecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

func newCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCache(rdb, ttl), s
}

func sampleConfig() *domain.RateConfig {
	return &domain.RateConfig{
		ID:            3,
		VersionNumber: 3,
		Status:        domain.RateActive,
		GreenFees: domain.GreenFees{
			"visitor": {domain.Holes18: {domain.Weekday: 1800, domain.Holiday: 2500}},
		},
		CaddyFees: domain.CaddyFees{"1:4": {domain.Holes18: 1600}},
		BaseFees: domain.BaseFees{
			Cleaning:      map[domain.Holes]int64{domain.Holes18: 200},
			CartPerPerson: map[domain.Holes]int64{domain.Holes18: 500},
		},
		TaxConfig: domain.TaxConfig{EntertainmentTax: 0.05},
	}
}

func TestCache_MissThenHit(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, sampleConfig()))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(2500), got.GreenFees["visitor"][domain.Holes18][domain.Holiday])
	assert.Equal(t, int64(1600), got.CaddyFees["1:4"][domain.Holes18])
	assert.Equal(t, 0.05, got.TaxConfig.EntertainmentTax)
}

func TestCache_TTLAndInvalidate(t *testing.T) {
	c, s := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleConfig()))
	assert.Equal(t, time.Minute, s.TTL(activeKey))

	s.FastForward(2 * time.Minute)
	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, sampleConfig()))
	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_CorruptedValue(t *testing.T) {
	c, s := newCache(t, 0)
	require.NoError(t, s.Set(activeKey, "{not json"))

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_RedisDown(t *testing.T) {
	c, s := newCache(t, 0)
	s.Close()

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCache)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
