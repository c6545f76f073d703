package catalog

import (
	"strings"

	"niche-workers/internal/models"
	"niche-workers/internal/scoring"
)

// record is the storage shape of a niche. The ceiling stays a string until
// toNiche so an unknown value surfaces as an enum error naming the niche.
type record struct {
	ID                         string     `yaml:"id"`
	Name                       string     `yaml:"name"`
	UnderservedAngle           string     `yaml:"underservedAngle"`
	SkillSignals               []string   `yaml:"skillSignals"`
	ProductionIntensity        string     `yaml:"productionIntensity"`
	MonetizationCeiling        string     `yaml:"monetizationCeiling"`
	CPMRange                   [2]float64 `yaml:"cpmRange"`
	MonetizationTimelineMonths float64    `yaml:"monetizationTimelineMonths"`
	AudienceLoyalty            float64    `yaml:"audienceLoyalty"`
	ContentSaturation          float64    `yaml:"contentSaturation"`
	SearchTrend                string     `yaml:"searchTrend"`
	CompetitionLevel           string     `yaml:"competitionLevel"`
	FormatMix                  []string   `yaml:"formatMix"`
}

func (r record) toNiche() (models.MicroNiche, error) {
	ceiling, err := models.ParseCeiling(r.MonetizationCeiling)
	if err != nil {
		return models.MicroNiche{}, &scoring.EnumError{
			Field:   "monetizationCeiling",
			Value:   r.MonetizationCeiling,
			NicheID: r.ID,
		}
	}

	return models.MicroNiche{
		ID:                         r.ID,
		Name:                       r.Name,
		UnderservedAngle:           r.UnderservedAngle,
		SkillSignals:               lowerAll(r.SkillSignals),
		ProductionIntensity:        models.TimeTier(r.ProductionIntensity),
		MonetizationCeiling:        ceiling,
		CPMRange:                   r.CPMRange,
		MonetizationTimelineMonths: r.MonetizationTimelineMonths,
		AudienceLoyalty:            r.AudienceLoyalty,
		ContentSaturation:          r.ContentSaturation,
		SearchTrend:                models.Trend(r.SearchTrend),
		CompetitionLevel:           models.Competition(r.CompetitionLevel),
		FormatMix:                  nonNil(r.FormatMix),
	}, nil
}

// lowerAll normalizes skill signals, which are matched against lowercase
// tokens.
func lowerAll(signals []string) []string {
	out := make([]string, len(signals))
	for i, s := range signals {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
