package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"niche-workers/internal/common/logger"
	"niche-workers/internal/models"
	"niche-workers/internal/scoring"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(interests string) models.Profile {
	return models.Profile{
		InterestsText:    interests,
		TimeAvailability: models.Time5To10,
		MonetizationGoal: models.Monetization2000,
	}
}

func testAnalysis(t *testing.T) *scoring.Analysis {
	t.Helper()
	catalog := []models.MicroNiche{{
		ID:                         "n1",
		Name:                       "Quiet Leadership",
		SkillSignals:               []string{"leadership"},
		ProductionIntensity:        models.Time5To10,
		MonetizationCeiling:        models.LongTail(),
		CPMRange:                   [2]float64{10, 20},
		MonetizationTimelineMonths: 3,
		AudienceLoyalty:            8,
		ContentSaturation:          2,
		SearchTrend:                models.TrendGrowing,
		CompetitionLevel:           models.CompetitionLow,
		FormatMix:                  []string{"podcast"},
	}}
	analysis, err := scoring.Analyze(catalog, testProfile("leadership"))
	require.NoError(t, err)
	return analysis
}

// ==========================
// Key Derivation
// ==========================

func TestKey(t *testing.T) {
	base := Key("v1", testProfile("Leadership, coaching"))

	assert.True(t, strings.HasPrefix(base, "niche:analysis:"))
	assert.Equal(t, base, Key("v1", testProfile("coaching leadership leadership")), "same token set")
	assert.NotEqual(t, base, Key("v2", testProfile("Leadership, coaching")), "catalog version")
	assert.NotEqual(t, base, Key("v1", testProfile("leadership")), "different tokens")

	other := testProfile("Leadership, coaching")
	other.TimeAvailability = models.Time15Plus
	assert.NotEqual(t, base, Key("v1", other), "time availability")

	other = testProfile("Leadership, coaching")
	other.MonetizationGoal = models.MonetizationMaximum
	assert.NotEqual(t, base, Key("v1", other), "monetization goal")
}

// ==========================
// Redis Round Trip
// ==========================

func TestAnalysisCache_MissThenHit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewAnalysisCache(client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()
	key := Key("v1", testProfile("leadership"))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	want := testAnalysis(t)
	require.NoError(t, c.Set(ctx, key, want))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
	assert.True(t, got.Results[0].Niche.MonetizationCeiling.IsLongTail())

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "entry expires with the ttl")
}

func TestAnalysisCache_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("niche:analysis:bad", "{not json"))

	c := NewAnalysisCache(client, time.Minute, logger.NewNoOpLogger())
	_, ok, err := c.Get(context.Background(), "niche:analysis:bad")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestAnalysisCache_RedisErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewAnalysisCache(client, 5*time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	mock.ExpectGet("k").SetErr(errors.New("READONLY You can't write against a read only replica"))
	_, ok, err := c.Get(ctx, "k")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache get k")

	analysis := testAnalysis(t)
	payload, err := json.Marshal(analysis)
	require.NoError(t, err)
	mock.ExpectSet("k", payload, 5*time.Minute).SetErr(errors.New("OOM command not allowed"))
	err = c.Set(ctx, "k", analysis)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache set k")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisCache_NilIsDisabled(t *testing.T) {
	var c *AnalysisCache
	got, ok, err := c.Get(context.Background(), "any")
	assert.Nil(t, got)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(context.Background(), "any", &scoring.Analysis{}))
}
