package scoring

import (
	"testing"

	"niche-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{85, "A"},
		{84.99, "B+"},
		{75, "B+"},
		{65, "B"},
		{55, "C+"},
		{54.9, "C"},
		{0, "C"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %v", tt.score)
	}
}

func TestRecommend(t *testing.T) {
	profile := defaultProfile()
	analysis, err := Analyze([]models.MicroNiche{financeNiche(), leadershipNiche()}, profile)
	require.NoError(t, err)

	rec, err := Recommend(analysis, profile)
	require.NoError(t, err)
	assert.Equal(t, "n1", rec.NicheID)
	assert.Equal(t, "A", rec.Grade)
	assert.Equal(t, []string{
		"Direct overlap with leadership",
		"Production intensity aligns with your 5-10 hrs time runway.",
		"Monetization ceiling supports $2000/month targets.",
	}, rec.Reasons)
	assert.Equal(t, []string{"Shorts", "Long-form"}, rec.FormatMix)
}

func TestRecommend_NoOverlapLongTail(t *testing.T) {
	profile := models.Profile{
		InterestsText:    "gardening",
		TimeAvailability: models.Time15Plus,
		MonetizationGoal: models.Monetization500,
	}
	analysis, err := Analyze([]models.MicroNiche{financeNiche()}, profile)
	require.NoError(t, err)

	rec, err := Recommend(analysis, profile)
	require.NoError(t, err)
	assert.Equal(t, "Flexible narrative that welcomes your current strengths", rec.Reasons[0])
	assert.Equal(t, "Production intensity aligns with your 15+ hrs time runway.", rec.Reasons[1])
	assert.Equal(t, "Monetization ceiling supports Audience-first runway targets.", rec.Reasons[2])
}

func TestRecommend_Empty(t *testing.T) {
	_, err := Recommend(nil, defaultProfile())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	_, err = Recommend(&Analysis{}, defaultProfile())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
