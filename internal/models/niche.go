// internal/models/niche.go
package models

// MicroNiche is one catalog entry. Catalog records are supplied by a catalog
// source and treated as read-only by everything downstream.
type MicroNiche struct {
	ID                         string      `json:"id" yaml:"id"`
	Name                       string      `json:"name" yaml:"name"`
	UnderservedAngle           string      `json:"underservedAngle" yaml:"underservedAngle"`
	SkillSignals               []string    `json:"skillSignals" yaml:"skillSignals"`
	ProductionIntensity        TimeTier    `json:"productionIntensity" yaml:"productionIntensity"`
	MonetizationCeiling        Ceiling     `json:"monetizationCeiling" yaml:"monetizationCeiling"`
	CPMRange                   [2]float64  `json:"cpmRange" yaml:"cpmRange"`
	MonetizationTimelineMonths float64     `json:"monetizationTimelineMonths" yaml:"monetizationTimelineMonths"`
	AudienceLoyalty            float64     `json:"audienceLoyalty" yaml:"audienceLoyalty"`
	ContentSaturation          float64     `json:"contentSaturation" yaml:"contentSaturation"`
	SearchTrend                Trend       `json:"searchTrend" yaml:"searchTrend"`
	CompetitionLevel           Competition `json:"competitionLevel" yaml:"competitionLevel"`
	FormatMix                  []string    `json:"formatMix" yaml:"formatMix"`
}

// CPMMidpoint is the midpoint of the niche's CPM range.
func (n MicroNiche) CPMMidpoint() float64 {
	return (n.CPMRange[0] + n.CPMRange[1]) / 2
}

// Profile is the creator input the catalog is ranked against.
type Profile struct {
	InterestsText    string           `json:"interestsText"`
	TimeAvailability TimeTier         `json:"timeAvailability"`
	MonetizationGoal MonetizationTier `json:"monetizationGoal"`
}
