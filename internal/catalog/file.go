package catalog

import (
	"context"
	"fmt"
	"os"

	stderrors "niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/models"

	"gopkg.in/yaml.v3"
)

// FileSource reads a catalog document from disk. JSON documents are accepted
// too since they parse as YAML.
type FileSource struct {
	path   string
	logger logger.Logger
}

type document struct {
	Niches []record `yaml:"niches"`
}

func NewFileSource(path string, log logger.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"catalogSource": "file"}),
	}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, stderrors.NewCatalogLoadFailedError(s.Name(), err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, stderrors.NewCatalogLoadFailedError(s.Name(), err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("catalog loaded", map[string]interface{}{
		"path":    s.path,
		"niches":  c.Len(),
		"version": c.Version,
	})
	return c, nil
}

// Parse validates a YAML or JSON catalog document and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, stderrors.NewCatalogValidationFailedError(fmt.Sprintf("malformed document: %v", err))
	}

	result, err := documentSchema.Validate(raw)
	if err != nil {
		return nil, stderrors.NewCatalogValidationFailedError(err.Error())
	}
	if !result.Valid {
		return nil, stderrors.NewCatalogValidationFailedError(result.Summary())
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, stderrors.NewCatalogValidationFailedError(fmt.Sprintf("decode document: %v", err))
	}

	niches := make([]models.MicroNiche, 0, len(doc.Niches))
	for _, r := range doc.Niches {
		n, err := r.toNiche()
		if err != nil {
			return nil, stderrors.FromScoringError(err)
		}
		niches = append(niches, n)
	}
	return New(niches)
}
