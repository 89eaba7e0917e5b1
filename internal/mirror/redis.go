package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/five82/shelf/internal/catalog"
)

// KV is the subset of redis.Cmdable the Redis mirror needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis keeps the collection under a single Redis key with no expiry.
type Redis struct {
	client KV
	key    string
}

// NewRedis wraps client. An empty key uses DefaultKey.
func NewRedis(client KV, key string) *Redis {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

func (r *Redis) Load(ctx context.Context) ([]catalog.Product, bool) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug().Str("key", r.key).Msg("no local mirror")
			return nil, false
		}
		log.Warn().Err(err).Str("key", r.key).Msg("read local mirror")
		return nil, false
	}
	products, err := decode(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("parse local mirror")
		return nil, false
	}
	return products, true
}

func (r *Redis) Save(ctx context.Context, products []catalog.Product) {
	data, err := encode(products)
	if err != nil {
		log.Error().Err(err).Msg("save local mirror")
		return
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", r.key).Msg("write local mirror")
		return
	}
	log.Debug().Int("products", len(products)).Str("key", r.key).Msg("saved local mirror")
}

func (r *Redis) Clear(ctx context.Context) {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		log.Error().Err(err).Str("key", r.key).Msg("clear local mirror")
		return
	}
	log.Info().Str("key", r.key).Msg("cleared local mirror")
}
