package scoremicroniche

import (
	"context"

	"niche-workers/internal/catalog"
	"niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/scoring"
)

type Service struct {
	catalog catalog.Source
	scorer  *scoring.Scorer
	logger  logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	return &Service{
		catalog: deps.Catalog,
		scorer:  scoring.NewScorer(),
		logger:  deps.Logger,
	}
}

// Execute scores one catalog niche against the input profile.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile()
	if err := scoring.ValidateProfile(profile); err != nil {
		return nil, errors.FromScoringError(err)
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	niche, ok := cat.Find(input.NicheID)
	if !ok {
		return nil, errors.NewNicheNotFoundError(input.NicheID)
	}

	result, err := s.scorer.Score(niche, profile)
	if err != nil {
		return nil, errors.FromScoringError(err)
	}

	// A one-result analysis yields the same reasons the ranking gives its
	// top pick.
	recommendation, err := scoring.Recommend(&scoring.Analysis{Results: []scoring.Result{result}}, profile)
	if err != nil {
		return nil, errors.FromScoringError(err)
	}

	s.logger.Info("Niche scored", map[string]interface{}{
		"nicheId":        niche.ID,
		"compositeScore": result.CompositeScore,
		"grade":          recommendation.Grade,
	})

	return &Output{
		CatalogVersion: cat.Version,
		Result:         result,
		Grade:          recommendation.Grade,
		Reasons:        recommendation.Reasons,
	}, nil
}
