package rankmicroniches

import (
	"niche-workers/internal/cache"
	"niche-workers/internal/catalog"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/observability"
	"niche-workers/internal/models"
	"niche-workers/internal/scoring"
)

type Input struct {
	InterestsText    string `json:"interestsText"`
	TimeAvailability string `json:"timeAvailability"`
	MonetizationGoal string `json:"monetizationGoal"`
	TopN             *int   `json:"topN,omitempty"`
}

func (i *Input) Profile() models.Profile {
	return models.Profile{
		InterestsText:    i.InterestsText,
		TimeAvailability: models.TimeTier(i.TimeAvailability),
		MonetizationGoal: models.MonetizationTier(i.MonetizationGoal),
	}
}

type Output struct {
	AnalysisID     string                  `json:"analysisId"`
	CatalogVersion string                  `json:"catalogVersion"`
	RankedNiches   []scoring.Result        `json:"rankedNiches"`
	TotalNiches    int                     `json:"totalNiches"`
	Overview       scoring.Overview        `json:"overview"`
	Recommendation *scoring.Recommendation `json:"recommendation"`
	Cached         bool                    `json:"cached"`
}

type ServiceDependencies struct {
	Catalog       catalog.Source
	Cache         *cache.AnalysisCache
	Observability *observability.Observability
	Logger        logger.Logger
}
