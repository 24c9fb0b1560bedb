package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

var (
	// ErrCacheMiss в кэше нет активной сетки
	ErrCacheMiss = errors.New("ratecache: cache miss")

	// ErrCache ошибка обращения к Redis или декодирования
	ErrCache = errors.New("ratecache: cache error")
)

const activeKey = "teetime:rate-config:active"

// Cache хранит активную тарифную сетку в Redis.
// Источник истины - БД; кэш заполняется по принципу best effort.
type Cache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewCache создает кэш. ttl <= 0 - без истечения.
func NewCache(rdb *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewClient создает клиента Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}
	return rdb, nil
}

// Get возвращает активную сетку из кэша
func (c *Cache) Get(ctx context.Context) (*domain.RateConfig, error) {
	raw, err := c.rdb.Get(ctx, activeKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrCache, err)
	}

	var cfg domain.RateConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrCache, err)
	}
	return &cfg, nil
}

// Set сохраняет активную сетку
func (c *Cache) Set(ctx context.Context, cfg *domain.RateConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}
	if err := c.rdb.Set(ctx, activeKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет закэшированную сетку
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, activeKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCache, err)
	}
	return nil
}
