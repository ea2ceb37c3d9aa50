package cache

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/config"
)

//go:embed scripts/unlock.lua
var unlockScript string

const activeAlertsKey = "safealert:alertas:activas"

var (
	_ alertas.AlertCache = (*RedisStore)(nil)
	_ alertas.Locker     = (*RedisStore)(nil)
)

// RedisStore caché de alertas activas y lock distribuido del generador sobre Redis.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	unlock *redis.Script
}

// NewRedisStore conecta a Redis y verifica con PING.
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisStore(rdb, cfg.CacheTTL), nil
}

func newRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisStore{rdb: rdb, ttl: ttl, unlock: redis.NewScript(unlockScript)}
}

// Close cierra la conexión.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping lo consulta GET /api/health.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// GetActive lee la lista cacheada. hit=false si la clave no existe.
func (s *RedisStore) GetActive(ctx context.Context) ([]dto.AlertResponse, bool, error) {
	raw, err := s.rdb.Get(ctx, activeAlertsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var list []dto.AlertResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		// entrada corrupta: se trata como miss y se sobrescribe en el próximo SetActive
		return nil, false, nil
	}
	return list, true, nil
}

// SetActive guarda la lista con el TTL configurado.
func (s *RedisStore) SetActive(ctx context.Context, list []dto.AlertResponse) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	if err := s.rdb.Set(ctx, activeAlertsKey, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateActive borra la lista cacheada.
func (s *RedisStore) InvalidateActive(ctx context.Context) error {
	if err := s.rdb.Del(ctx, activeAlertsKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// TryLock SETNX con TTL. El valor es un token aleatorio; unlock solo borra si el token coincide,
// así un proceso cuyo lock expiró no libera el de otro.
func (s *RedisStore) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	unlock := func(ctx context.Context) error {
		if err := s.unlock.Run(ctx, s.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis unlock: %w", err)
		}
		return nil
	}
	return unlock, true, nil
}
