// Package cache memoizes full analyses in Redis, keyed by catalog version and
// creator profile.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/metrics"
	"niche-workers/internal/models"
	"niche-workers/internal/scoring"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "niche:analysis:"

var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:niche-workers:analysis"))

// AnalysisCache stores scoring.Analysis values as JSON with a TTL. A nil
// *AnalysisCache is valid and never hits.
type AnalysisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewAnalysisCache(client redis.Cmdable, ttl time.Duration, log logger.Logger) *AnalysisCache {
	return &AnalysisCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "analysis-cache"}),
	}
}

// Key derives the cache key for a (catalog version, profile) pair. Interests
// that tokenize to the same set share a key because matching only asks
// whether any token occurs in a signal.
func Key(catalogVersion string, profile models.Profile) string {
	tokens := slices.Sorted(scoring.Tokenize(profile.InterestsText))
	tokens = slices.Compact(tokens)

	name := strings.Join([]string{
		catalogVersion,
		string(profile.TimeAvailability),
		string(profile.MonetizationGoal),
		strings.Join(tokens, " "),
	}, "\x1f")
	return keyPrefix + uuid.NewSHA1(keyNamespace, []byte(name)).String()
}

// Get returns the cached analysis. A miss is (nil, false, nil); Redis or
// decode failures are reported so callers can fall back to scoring.
func (c *AnalysisCache) Get(ctx context.Context, key string) (*scoring.Analysis, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.AnalysisCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
		c.logger.Debug("analysis cache miss", map[string]interface{}{"key": key})
		return nil, false, nil
	}
	if err != nil {
		metrics.AnalysisCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var analysis scoring.Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		metrics.AnalysisCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		return nil, false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	metrics.AnalysisCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
	c.logger.Debug("analysis cache hit", map[string]interface{}{"key": key})
	return &analysis, true, nil
}

// Set stores analysis under key with the configured TTL.
func (c *AnalysisCache) Set(ctx context.Context, key string, analysis *scoring.Analysis) error {
	if c == nil || analysis == nil {
		return nil
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
