package scoring

import (
	"fmt"
	"strings"

	"niche-workers/internal/models"
)

// Grade buckets a composite score into a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 75:
		return "B+"
	case score >= 65:
		return "B"
	case score >= 55:
		return "C+"
	default:
		return "C"
	}
}

var runwayLabels = map[models.TimeTier]string{
	models.TimeUnder5: "< 5 hrs",
	models.Time5To10:  "5-10 hrs",
	models.Time10To15: "10-15 hrs",
	models.Time15Plus: "15+ hrs",
}

// RunwayLabel is the short human label for a weekly time tier.
func RunwayLabel(t models.TimeTier) string {
	if label, ok := runwayLabels[t]; ok {
		return label
	}
	return string(t)
}

// CeilingLabel describes what a ceiling supports. Long-tail niches are sold
// as an audience-first runway rather than a revenue number.
func CeilingLabel(c models.Ceiling) string {
	if c.IsLongTail() {
		return "Audience-first runway"
	}
	return c.String()
}

// Recommendation is the top-ranked niche with the reasons it fits.
type Recommendation struct {
	NicheID        string   `json:"nicheId"`
	Name           string   `json:"name"`
	CompositeScore float64  `json:"compositeScore"`
	Grade          string   `json:"grade"`
	Reasons        []string `json:"reasons"`
	FormatMix      []string `json:"formatMix"`
}

// Recommend builds a recommendation from the first result of an analysis.
func Recommend(analysis *Analysis, profile models.Profile) (*Recommendation, error) {
	if analysis == nil || len(analysis.Results) == 0 {
		return nil, ErrEmptyCatalog
	}
	top := analysis.Results[0]

	overlap := "Flexible narrative that welcomes your current strengths"
	if len(top.MatchedSignals) > 0 {
		overlap = "Direct overlap with " + strings.Join(top.MatchedSignals, ", ")
	}

	return &Recommendation{
		NicheID:        top.Niche.ID,
		Name:           top.Niche.Name,
		CompositeScore: top.CompositeScore,
		Grade:          Grade(top.CompositeScore),
		Reasons: []string{
			overlap,
			fmt.Sprintf("Production intensity aligns with your %s time runway.", RunwayLabel(profile.TimeAvailability)),
			fmt.Sprintf("Monetization ceiling supports %s targets.", CeilingLabel(top.Niche.MonetizationCeiling)),
		},
		FormatMix: top.Niche.FormatMix,
	}, nil
}
