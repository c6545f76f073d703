// Package scoring ranks micro-niches against a creator profile.
//
// Scoring is a pure function of (catalog, profile): nothing is cached or
// retained between calls, and the catalog is never modified. Callers that want
// memoization do it at their own boundary.
package scoring

import (
	"iter"
	"slices"
	"sort"

	"niche-workers/internal/models"
)

// FactorScore is one entry of a result's score breakdown.
type FactorScore struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// Result is the scored view of a single niche.
type Result struct {
	Niche            models.MicroNiche `json:"microNiche"`
	CompositeScore   float64           `json:"compositeScore"`
	InterestCoverage float64           `json:"interestCoverage"`
	MatchedSignals   []string          `json:"matchedSignals"`
	ScoreBreakdown   []FactorScore     `json:"scoreBreakdown"`
}

// Overview holds catalog-wide averages. It does not depend on the profile.
type Overview struct {
	AverageCPM            float64 `json:"averageCpm"`
	AverageTimelineMonths float64 `json:"averageTimelineMonths"`
}

// Analysis is a full ranking of a catalog for one profile.
type Analysis struct {
	Results  []Result `json:"results"`
	Overview Overview `json:"overview"`
}

// Scorer computes composite scores with a fixed weight set.
type Scorer struct {
	weights Weights
}

func NewScorer() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

var defaultScorer = NewScorer()

// Analyze ranks catalog for profile using the default weights.
func Analyze(catalog []models.MicroNiche, profile models.Profile) (*Analysis, error) {
	return defaultScorer.Analyze(catalog, profile)
}

// Analyze scores every niche, orders them by descending composite score and
// computes the catalog overview. Niches with equal scores keep their catalog
// order.
func (s *Scorer) Analyze(catalog []models.MicroNiche, profile models.Profile) (*Analysis, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	tokens := slices.Collect(Tokenize(profile.InterestsText))
	results := make([]Result, 0, len(catalog))
	for _, niche := range catalog {
		result, err := s.score(niche, profile, slices.Values(tokens))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})

	overview, err := Summarize(catalog)
	if err != nil {
		return nil, err
	}

	return &Analysis{Results: results, Overview: overview}, nil
}

// Score evaluates a single niche for profile.
func (s *Scorer) Score(niche models.MicroNiche, profile models.Profile) (Result, error) {
	if err := ValidateProfile(profile); err != nil {
		return Result{}, err
	}
	return s.score(niche, profile, Tokenize(profile.InterestsText))
}

func (s *Scorer) score(niche models.MicroNiche, profile models.Profile, tokens iter.Seq[string]) (Result, error) {
	matched := MatchSignals(niche.SkillSignals, tokens)
	coverage := Coverage(len(matched), len(niche.SkillSignals))

	timeScore, err := TimeMatch(profile.TimeAvailability, niche.ProductionIntensity)
	if err != nil {
		return Result{}, withNiche(err, niche.ID)
	}
	goalScore, err := MonetizationFit(profile.MonetizationGoal, niche.MonetizationCeiling)
	if err != nil {
		return Result{}, withNiche(err, niche.ID)
	}
	trendScore, err := TrendScore(niche.SearchTrend)
	if err != nil {
		return Result{}, withNiche(err, niche.ID)
	}
	competitionScore, err := CompetitionScore(niche.CompetitionLevel)
	if err != nil {
		return Result{}, withNiche(err, niche.ID)
	}

	w := s.weights
	breakdown := []FactorScore{
		{Label: LabelInterestFit, Weight: w.Interests, Value: coverage},
		{Label: LabelTimeMatch, Weight: w.Time, Value: timeScore},
		{Label: LabelMonetizationCeiling, Weight: w.Goal, Value: goalScore},
		{Label: LabelSearchTrend, Weight: w.Trend, Value: trendScore},
		{Label: LabelAudienceLoyalty, Weight: w.Loyalty, Value: LoyaltyScore(niche.AudienceLoyalty)},
		{Label: LabelContentSaturation, Weight: w.Saturation, Value: SaturationScore(niche.ContentSaturation)},
		{Label: LabelCompetition, Weight: w.Competition, Value: competitionScore},
	}

	composite := 0.0
	for _, f := range breakdown {
		composite += f.Value * f.Weight
	}

	return Result{
		Niche:            niche,
		CompositeScore:   composite * 100,
		InterestCoverage: coverage,
		MatchedSignals:   matched,
		ScoreBreakdown:   breakdown,
	}, nil
}

// Summarize averages CPM midpoints and monetization timelines over the whole
// catalog.
func Summarize(catalog []models.MicroNiche) (Overview, error) {
	if len(catalog) == 0 {
		return Overview{}, ErrEmptyCatalog
	}

	var cpm, timeline float64
	for _, niche := range catalog {
		cpm += niche.CPMMidpoint()
		timeline += niche.MonetizationTimelineMonths
	}
	n := float64(len(catalog))

	return Overview{
		AverageCPM:            cpm / n,
		AverageTimelineMonths: timeline / n,
	}, nil
}

// ValidateProfile checks the profile's enumerated fields.
func ValidateProfile(profile models.Profile) error {
	if !profile.TimeAvailability.Valid() {
		return newEnumError("timeAvailability", string(profile.TimeAvailability))
	}
	if !profile.MonetizationGoal.Valid() {
		return newEnumError("monetizationGoal", string(profile.MonetizationGoal))
	}
	return nil
}

// ValidateCatalog checks every enumerated field of every niche. It does not
// check numeric ranges.
func ValidateCatalog(catalog []models.MicroNiche) error {
	if len(catalog) == 0 {
		return ErrEmptyCatalog
	}
	for _, niche := range catalog {
		var err error
		switch {
		case !niche.ProductionIntensity.Valid():
			err = newEnumError("productionIntensity", string(niche.ProductionIntensity))
		case !niche.MonetizationCeiling.Valid():
			err = newEnumError("monetizationCeiling", niche.MonetizationCeiling.String())
		case !niche.SearchTrend.Valid():
			err = newEnumError("searchTrend", string(niche.SearchTrend))
		case !niche.CompetitionLevel.Valid():
			err = newEnumError("competitionLevel", string(niche.CompetitionLevel))
		}
		if err != nil {
			return withNiche(err, niche.ID)
		}
	}
	return nil
}
