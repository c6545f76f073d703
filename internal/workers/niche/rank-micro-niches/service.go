package rankmicroniches

import (
	"context"
	"fmt"
	"time"

	"niche-workers/internal/cache"
	"niche-workers/internal/catalog"
	"niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/metrics"
	"niche-workers/internal/common/observability"
	"niche-workers/internal/scoring"

	"github.com/google/uuid"
)

type Service struct {
	config        *Config
	catalog       catalog.Source
	cache         *cache.AnalysisCache
	observability *observability.Observability
	logger        logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:        config,
		catalog:       deps.Catalog,
		cache:         deps.Cache,
		observability: deps.Observability,
		logger:        deps.Logger,
	}
}

// Execute ranks the catalog for the input profile. The full analysis is
// cached; top-N truncation happens afterwards so every N shares one entry.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	profile := input.Profile()

	if err := scoring.ValidateProfile(profile); err != nil {
		return nil, errors.FromScoringError(err)
	}
	topN, err := s.resolveTopN(input)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	metrics.CatalogSize.WithLabelValues(s.catalog.Name()).Set(float64(cat.Len()))

	key := cache.Key(cat.Version, profile)
	analysis, cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Analysis cache unavailable, scoring directly", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	if !cached {
		analysis, err = scoring.Analyze(cat.Niches, profile)
		if err != nil {
			return nil, errors.FromScoringError(err)
		}
		if err := s.cache.Set(ctx, key, analysis); err != nil {
			s.logger.Warn("Failed to cache analysis", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	recommendation, err := scoring.Recommend(analysis, profile)
	if err != nil {
		return nil, errors.FromScoringError(err)
	}

	metrics.TopCompositeScore.Observe(recommendation.CompositeScore)
	s.observability.RecordNichesScored(ctx, len(analysis.Results), cached)

	ranked := analysis.Results
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}

	output := &Output{
		AnalysisID:     uuid.NewString(),
		CatalogVersion: cat.Version,
		RankedNiches:   ranked,
		TotalNiches:    len(analysis.Results),
		Overview:       analysis.Overview,
		Recommendation: recommendation,
		Cached:         cached,
	}

	s.logger.Info("Ranking completed", map[string]interface{}{
		"analysisId":     output.AnalysisID,
		"catalogVersion": cat.Version,
		"count":          len(ranked),
		"topNicheId":     recommendation.NicheID,
		"topScore":       recommendation.CompositeScore,
		"cached":         cached,
		"duration":       time.Since(start).String(),
	})

	return output, nil
}

func (s *Service) resolveTopN(input *Input) (int, error) {
	if input.TopN == nil {
		return s.config.DefaultTopN, nil
	}
	if *input.TopN < 0 {
		return 0, errors.NewInvalidProfileError(fmt.Sprintf("topN must not be negative, got %d", *input.TopN))
	}
	return *input.TopN, nil
}
