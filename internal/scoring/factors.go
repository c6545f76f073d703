package scoring

import (
	"niche-workers/internal/models"
)

// Factor labels, in breakdown order.
const (
	LabelInterestFit         = "Interest Fit"
	LabelTimeMatch           = "Time Match"
	LabelMonetizationCeiling = "Monetization Ceiling"
	LabelSearchTrend         = "Search Trend"
	LabelAudienceLoyalty     = "Audience Loyalty"
	LabelContentSaturation   = "Content Saturation"
	LabelCompetition         = "Competition"
)

// Weights are the fixed factor weights. They sum to 1.0.
type Weights struct {
	Interests   float64
	Time        float64
	Goal        float64
	Trend       float64
	Loyalty     float64
	Saturation  float64
	Competition float64
}

// DefaultWeights returns the production weight set.
func DefaultWeights() Weights {
	return Weights{
		Interests:   0.35,
		Time:        0.15,
		Goal:        0.15,
		Trend:       0.10,
		Loyalty:     0.10,
		Saturation:  0.10,
		Competition: 0.05,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Interests + w.Time + w.Goal + w.Trend + w.Loyalty + w.Saturation + w.Competition
}

// timeCompatibility is indexed [user availability][niche production intensity].
// Having more time than a niche needs costs less than having too little.
var timeCompatibility = map[models.TimeTier]map[models.TimeTier]float64{
	models.TimeUnder5: {
		models.TimeUnder5: 1.00,
		models.Time5To10:  0.70,
		models.Time10To15: 0.45,
		models.Time15Plus: 0.30,
	},
	models.Time5To10: {
		models.TimeUnder5: 0.85,
		models.Time5To10:  1.00,
		models.Time10To15: 0.75,
		models.Time15Plus: 0.60,
	},
	models.Time10To15: {
		models.TimeUnder5: 0.70,
		models.Time5To10:  0.85,
		models.Time10To15: 1.00,
		models.Time15Plus: 0.85,
	},
	models.Time15Plus: {
		models.TimeUnder5: 0.55,
		models.Time5To10:  0.75,
		models.Time10To15: 0.90,
		models.Time15Plus: 1.00,
	},
}

var trendScores = map[models.Trend]float64{
	models.TrendGrowing:   1.00,
	models.TrendStable:    0.75,
	models.TrendDeclining: 0.35,
}

var competitionScores = map[models.Competition]float64{
	models.CompetitionLow:    1.00,
	models.CompetitionMedium: 0.72,
	models.CompetitionHigh:   0.45,
}

// Long-tail niches favour modest, audience-first goals.
const (
	longTailModestGoal    = 0.70
	longTailAmbitiousGoal = 0.40
	longTailModestMaxGoal = 1 // highest goal index still considered modest
)

// TimeMatch looks up the compatibility of a creator's availability with a
// niche's production intensity.
func TimeMatch(user, niche models.TimeTier) (float64, error) {
	row, ok := timeCompatibility[user]
	if !ok {
		return 0, newEnumError("timeAvailability", string(user))
	}
	score, ok := row[niche]
	if !ok {
		return 0, newEnumError("productionIntensity", string(niche))
	}
	return score, nil
}

// MonetizationFit scores how well a niche's ceiling supports the creator's
// goal.
func MonetizationFit(goal models.MonetizationTier, ceiling models.Ceiling) (float64, error) {
	goalIndex := goal.Index()
	if goalIndex < 0 {
		return 0, newEnumError("monetizationGoal", string(goal))
	}

	if ceiling.IsLongTail() {
		if goalIndex <= longTailModestMaxGoal {
			return longTailModestGoal, nil
		}
		return longTailAmbitiousGoal, nil
	}

	tier, _ := ceiling.Tier()
	nicheIndex := tier.Index()
	if nicheIndex < 0 {
		return 0, newEnumError("monetizationCeiling", ceiling.String())
	}

	switch shortfall := goalIndex - nicheIndex; {
	case shortfall <= 0:
		return 1.0, nil
	case shortfall == 1:
		return 0.75, nil
	default:
		return 0.5, nil
	}
}

func TrendScore(trend models.Trend) (float64, error) {
	score, ok := trendScores[trend]
	if !ok {
		return 0, newEnumError("searchTrend", string(trend))
	}
	return score, nil
}

func CompetitionScore(level models.Competition) (float64, error) {
	score, ok := competitionScores[level]
	if !ok {
		return 0, newEnumError("competitionLevel", string(level))
	}
	return score, nil
}

// LoyaltyScore maps a 0-10 loyalty rating onto [0,1].
func LoyaltyScore(loyalty float64) float64 {
	return loyalty / 10
}

// SaturationScore inverts a 0-10 saturation rating; lower saturation is better.
func SaturationScore(saturation float64) float64 {
	return 1 - saturation/10
}
