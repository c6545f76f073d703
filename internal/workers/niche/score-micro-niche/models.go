package scoremicroniche

import (
	"niche-workers/internal/catalog"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/observability"
	"niche-workers/internal/models"
	"niche-workers/internal/scoring"
)

type Input struct {
	NicheID          string `json:"nicheId"`
	InterestsText    string `json:"interestsText"`
	TimeAvailability string `json:"timeAvailability"`
	MonetizationGoal string `json:"monetizationGoal"`
}

func (i *Input) Profile() models.Profile {
	return models.Profile{
		InterestsText:    i.InterestsText,
		TimeAvailability: models.TimeTier(i.TimeAvailability),
		MonetizationGoal: models.MonetizationTier(i.MonetizationGoal),
	}
}

type Output struct {
	CatalogVersion string         `json:"catalogVersion"`
	Result         scoring.Result `json:"nicheScore"`
	Grade          string         `json:"grade"`
	Reasons        []string       `json:"reasons"`
}

type ServiceDependencies struct {
	Catalog       catalog.Source
	Observability *observability.Observability
	Logger        logger.Logger
}
