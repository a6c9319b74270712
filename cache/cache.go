package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache é um cache read-through simples em redis, usado hoje só pelo
// catálogo de modelos. Um *Cache nil é válido e vira no-op - redis é
// opcional em dev.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewFromClient monta o cache em cima de um client pronto (testes usam miniredis).
func NewFromClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// GetJSON devolve true se a chave existia e foi desserializada em dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// entrada corrompida: remove e segue pro banco
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON grava best-effort; falha de cache nunca quebra a request.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("falha ao gravar cache")
	}
}

func (c *Cache) Close() {
	if c != nil {
		_ = c.rdb.Close()
	}
}
