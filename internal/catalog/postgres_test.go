package catalog

import (
	"context"
	"errors"
	"testing"

	stderrors "niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nicheColumns = []string{
	"id", "name", "underserved_angle", "skill_signals", "production_intensity",
	"monetization_ceiling", "cpm_low", "cpm_high", "monetization_timeline_months",
	"audience_loyalty", "content_saturation", "search_trend", "competition_level", "format_mix",
}

func setupMockDB(t *testing.T) (*PostgresSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSource(db, "micro_niches", logger.NewTestLogger(t)), mock
}

func TestPostgresSource_Load(t *testing.T) {
	src, mock := setupMockDB(t)
	assert.Equal(t, "postgres", src.Name())

	rows := sqlmock.NewRows(nicheColumns).
		AddRow("n1", "Quiet Leadership", nil, "{Leadership,coaching}", "5to10",
			"$2000/month", 10.0, 20.0, 3.0, 8.0, 2.0, "growing", "Low", "{video,newsletter}").
		AddRow("n2", "Frugal Finance", "Budgeting for students", "{finance}", "15plus",
			"long-tail", 4.0, 8.0, 9.0, 5.0, 7.0, "declining", "High", "{}")
	mock.ExpectQuery(`FROM "micro_niches"\s+ORDER BY sort_order, id`).WillReturnRows(rows)

	c, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	n1 := c.Niches[0]
	assert.Equal(t, []string{"leadership", "coaching"}, n1.SkillSignals)
	assert.Equal(t, "", n1.UnderservedAngle)
	assert.Equal(t, []string{"video", "newsletter"}, n1.FormatMix)
	assert.Equal(t, models.Tiered(models.Monetization2000), n1.MonetizationCeiling)

	n2 := c.Niches[1]
	assert.True(t, n2.MonetizationCeiling.IsLongTail())
	assert.Equal(t, [2]float64{4, 8}, n2.CPMRange)
	assert.Empty(t, n2.FormatMix)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryErrorIsRetryable(t *testing.T) {
	src, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT id, name`).WillReturnError(errors.New("connection reset by peer"))

	_, err := src.Load(context.Background())
	stdErr := requireCode(t, err, stderrors.ErrCodeCatalogLoadFailed)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "connection reset")
}

func TestPostgresSource_EmptyTable(t *testing.T) {
	src, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT id, name`).WillReturnRows(sqlmock.NewRows(nicheColumns))

	_, err := src.Load(context.Background())
	requireCode(t, err, stderrors.ErrCodeEmptyCatalog)
}

func TestPostgresSource_InvalidCeiling(t *testing.T) {
	src, mock := setupMockDB(t)
	rows := sqlmock.NewRows(nicheColumns).
		AddRow("n9", "Odd", nil, "{x}", "under5", "$1M/month", 1.0, 2.0, 1.0, 1.0, 1.0, "stable", "Low", "{}")
	mock.ExpectQuery(`SELECT id, name`).WillReturnRows(rows)

	_, err := src.Load(context.Background())
	stdErr := requireCode(t, err, stderrors.ErrCodeInvalidEnumValue)
	assert.Equal(t, "n9", stdErr.Metadata["nicheId"])
}

func TestPostgresSource_RowError(t *testing.T) {
	src, mock := setupMockDB(t)
	rows := sqlmock.NewRows(nicheColumns).
		AddRow("n1", "Quiet Leadership", nil, "{leadership}", "5to10",
			"$2000/month", 10.0, 20.0, 3.0, 8.0, 2.0, "growing", "Low", "{}").
		RowError(0, errors.New("canceling statement due to statement timeout"))
	mock.ExpectQuery(`SELECT id, name`).WillReturnRows(rows)

	_, err := src.Load(context.Background())
	requireCode(t, err, stderrors.ErrCodeCatalogLoadFailed)
}
