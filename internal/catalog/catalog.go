// Package catalog loads the micro-niche catalog from a YAML/JSON document or
// a Postgres table and stamps it with a content-derived version.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	stderrors "niche-workers/internal/common/errors"
	"niche-workers/internal/models"
	"niche-workers/internal/scoring"

	"github.com/google/uuid"
)

// versionNamespace scopes catalog version UUIDs.
var versionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:niche-workers:catalog"))

// Source produces a validated catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	Name() string
}

// Catalog is an ordered, read-only set of micro-niches. Order is significant:
// it is the tie-break when composite scores are equal.
type Catalog struct {
	Version string
	Niches  []models.MicroNiche
	index   map[string]int
}

// New validates niches and derives the catalog version from their content,
// so two sources serving identical records share cache entries.
func New(niches []models.MicroNiche) (*Catalog, error) {
	if len(niches) == 0 {
		return nil, stderrors.NewEmptyCatalogError("catalog has no records")
	}
	if err := scoring.ValidateCatalog(niches); err != nil {
		return nil, stderrors.FromScoringError(err)
	}

	index := make(map[string]int, len(niches))
	for i, n := range niches {
		if n.ID == "" {
			return nil, stderrors.NewCatalogValidationFailedError(fmt.Sprintf("record %d has no id", i))
		}
		if _, dup := index[n.ID]; dup {
			return nil, stderrors.NewCatalogValidationFailedError(fmt.Sprintf("duplicate niche id %q", n.ID))
		}
		if err := checkRanges(n); err != nil {
			return nil, stderrors.NewCatalogValidationFailedError(fmt.Sprintf("niche %q: %v", n.ID, err))
		}
		index[n.ID] = i
	}

	payload, err := json.Marshal(niches)
	if err != nil {
		return nil, stderrors.NewInternalError(fmt.Errorf("encode catalog: %w", err))
	}

	return &Catalog{
		Version: uuid.NewSHA1(versionNamespace, payload).String(),
		Niches:  niches,
		index:   index,
	}, nil
}

// Find looks a niche up by id.
func (c *Catalog) Find(id string) (models.MicroNiche, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.MicroNiche{}, false
	}
	return c.Niches[i], true
}

func (c *Catalog) Len() int {
	return len(c.Niches)
}

func checkRanges(n models.MicroNiche) error {
	low, high := n.CPMRange[0], n.CPMRange[1]
	switch {
	case !finite(low) || !finite(high) || low < 0 || low > high:
		return fmt.Errorf("cpmRange [%g, %g] must satisfy 0 <= low <= high", low, high)
	case !finite(n.MonetizationTimelineMonths) || n.MonetizationTimelineMonths <= 0:
		return fmt.Errorf("monetizationTimelineMonths must be positive")
	case n.AudienceLoyalty < 0 || n.AudienceLoyalty > 10:
		return fmt.Errorf("audienceLoyalty %g outside [0, 10]", n.AudienceLoyalty)
	case n.ContentSaturation < 0 || n.ContentSaturation > 10:
		return fmt.Errorf("contentSaturation %g outside [0, 10]", n.ContentSaturation)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
