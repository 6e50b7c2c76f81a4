package hospitals

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wardpass/wardpass/pkg/logging"
)

const listCacheKey = "hospitals:index"

// CachedRepository layers a redis cache over another Repository. Hospital
// records change rarely and only via administration, so a short TTL is the
// whole invalidation story.
type CachedRepository struct {
	inner  Repository
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedRepository wraps inner with a redis cache.
func NewCachedRepository(inner Repository, redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedRepository {
	if inner == nil {
		panic("hospitals: inner repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedRepository{inner: inner, redis: redisClient, ttl: ttl, logger: logger}
}

func (r *CachedRepository) key(id uuid.UUID) string {
	return fmt.Sprintf("hospital:%s", id)
}

// GetByID serves from cache when possible, falling back to the inner
// repository. Cache failures degrade to the inner lookup, never to an error.
func (r *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	if r.redis != nil {
		data, err := r.redis.Get(ctx, r.key(id)).Bytes()
		if err == nil {
			var h Hospital
			if err := json.Unmarshal(data, &h); err == nil {
				return &h, nil
			}
			r.logger.Warn("hospital cache entry corrupt, refetching", "hospital_id", id)
		} else if err != redis.Nil {
			r.logger.Warn("hospital cache read failed", "error", err, "hospital_id", id)
		}
	}

	h, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, r.key(id), h)
	return h, nil
}

// List serves the full directory, cached under a single key.
func (r *CachedRepository) List(ctx context.Context) ([]*Hospital, error) {
	if r.redis != nil {
		data, err := r.redis.Get(ctx, listCacheKey).Bytes()
		if err == nil {
			var out []*Hospital
			if err := json.Unmarshal(data, &out); err == nil {
				return out, nil
			}
		} else if err != redis.Nil {
			r.logger.Warn("hospital list cache read failed", "error", err)
		}
	}

	out, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, listCacheKey, out)
	return out, nil
}

func (r *CachedRepository) store(ctx context.Context, key string, v any) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("hospital cache write failed", "error", err, "key", key)
	}
}
