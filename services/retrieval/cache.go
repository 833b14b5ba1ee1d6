package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"time"

	"lawyerconnect/metrics"
	"lawyerconnect/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedIndex is a read-through Redis cache in front of another index.
// Redis failures are logged and bypassed; they never fail a search.
type CachedIndex struct {
	next   Index
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedIndex(next Index, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedIndex {
	if ttl <= 0 {
		ttl = utils.DefaultRetrievalCacheTTL
	}
	return &CachedIndex{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedIndex) Search(ctx context.Context, vector []float64, topK int) ([]Passage, error) {
	key := cacheKey(vector, topK)

	data, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var passages []Passage
		if jsonErr := json.Unmarshal([]byte(data), &passages); jsonErr == nil {
			metrics.RetrievalCache.WithLabelValues("hit").Inc()
			return passages, nil
		}
		metrics.RetrievalCache.WithLabelValues("error").Inc()
	case err == redis.Nil:
		metrics.RetrievalCache.WithLabelValues("miss").Inc()
	default:
		metrics.RetrievalCache.WithLabelValues("error").Inc()
		c.logger.Debug("retrieval cache read failed", zap.Error(err))
	}

	passages, err := c.next.Search(ctx, vector, topK)
	if err != nil || len(passages) == 0 {
		return passages, err
	}

	if b, err := json.Marshal(passages); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.logger.Debug("retrieval cache write failed", zap.Error(err))
		}
	}
	return passages, nil
}

func cacheKey(vector []float64, topK int) string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(topK))
	h.Write(buf[:])
	for _, v := range vector {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return utils.RetrievalCachePrefix + hex.EncodeToString(h.Sum(nil))
}
