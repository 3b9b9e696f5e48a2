package scoring

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// ResultCache memoizes scoring outcomes in Redis. The pipeline is a pure
// function of (schema, vector), so a digest of both is a sound cache key.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedResult struct {
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

func (c *ResultCache) Get(ctx context.Context, schema string, vector []float64) (float64, string, bool) {
	value, err := c.client.Get(ctx, cacheKey(schema, vector)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Debug("result cache read failed")
		}
		return 0, "", false
	}
	var cached cachedResult
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return 0, "", false
	}
	return cached.Probability, cached.RiskLevel, true
}

func (c *ResultCache) Set(ctx context.Context, schema string, vector []float64, probability float64, riskLevel string) {
	payload, err := json.Marshal(cachedResult{Probability: probability, RiskLevel: riskLevel})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(schema, vector), payload, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Debug("result cache write failed")
	}
}

func cacheKey(schema string, vector []float64) string {
	raw, _ := json.Marshal(vector)
	digest := sha256.Sum256(raw)
	return fmt.Sprintf("riskscore:result:%s:%x", schema, digest[:16])
}
