package catalog

import (
	"context"
	"database/sql"
	"fmt"

	stderrors "niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/models"

	"github.com/lib/pq"
)

// PostgresSource reads the catalog from a table with one row per niche.
// skill_signals and format_mix are text[] columns; sort_order fixes the
// catalog order.
type PostgresSource struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, table string, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		table:  table,
		logger: log.WithFields(map[string]interface{}{"catalogSource": "postgres"}),
	}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) query() string {
	return fmt.Sprintf(`
		SELECT id, name, underserved_angle, skill_signals, production_intensity,
		       monetization_ceiling, cpm_low, cpm_high, monetization_timeline_months,
		       audience_loyalty, content_saturation, search_trend, competition_level, format_mix
		FROM %s
		ORDER BY sort_order, id`, pq.QuoteIdentifier(s.table))
}

func (s *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	rows, err := s.db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, stderrors.NewCatalogLoadFailedError(s.Name(), err)
	}
	defer rows.Close()

	var niches []models.MicroNiche
	for rows.Next() {
		var (
			r          record
			angle      sql.NullString
			formatMix  pq.StringArray
			skillSigns pq.StringArray
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &angle, &skillSigns, &r.ProductionIntensity,
			&r.MonetizationCeiling, &r.CPMRange[0], &r.CPMRange[1], &r.MonetizationTimelineMonths,
			&r.AudienceLoyalty, &r.ContentSaturation, &r.SearchTrend, &r.CompetitionLevel, &formatMix,
		); err != nil {
			return nil, stderrors.NewCatalogLoadFailedError(s.Name(), fmt.Errorf("scan row: %w", err))
		}
		r.UnderservedAngle = angle.String
		r.SkillSignals = skillSigns
		r.FormatMix = formatMix

		n, err := r.toNiche()
		if err != nil {
			return nil, stderrors.FromScoringError(err)
		}
		niches = append(niches, n)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewCatalogLoadFailedError(s.Name(), err)
	}

	c, err := New(niches)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("catalog loaded", map[string]interface{}{
		"table":   s.table,
		"niches":  c.Len(),
		"version": c.Version,
	})
	return c, nil
}
