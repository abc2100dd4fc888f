package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/application/ports"
	"github.com/reglet-dev/chartopts/internal/domain/chart"
)

// ConvertService normalizes documents: themes are layered in, keys are
// validated and coerced, and the trimmed external form is produced.
type ConvertService struct {
	docs documents
}

// NewConvertService creates a new convert service.
func NewConvertService(loader ports.DocumentLoader, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertService{docs: documents{loader: loader, logger: logger}}
}

// Convert decodes and re-exports one document.
func (s *ConvertService) Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.docs.load(req.Document, req.Path)
	if err != nil {
		return nil, err
	}
	doc, err = prepare(doc, req.Theme, req.DefaultType)
	if err != nil {
		return nil, err
	}

	source := sourceName(req.Path)
	rec, err := s.docs.decode(source, doc, req.Strict)
	if err != nil {
		return nil, err
	}

	dropped := rec.DroppedPaths()
	s.docs.logger.Debug("document converted", "source", source, "dropped", len(dropped))

	return &dto.ConvertResponse{
		Record:  rec,
		Output:  chart.Encode(rec),
		Dropped: dropped,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(start),
		},
	}, nil
}

// prepare layers the theme underneath doc and fills the default series type.
// doc is not modified.
func prepare(doc, theme map[string]any, defaultType string) (map[string]any, error) {
	out, err := chart.ApplyTheme(doc, theme)
	if err != nil {
		return nil, err
	}
	if defaultType == "" {
		return out, nil
	}
	c, ok := out["chart"].(map[string]any)
	if !ok {
		c = map[string]any{}
		out["chart"] = c
	}
	if _, has := c["type"]; !has {
		c["type"] = defaultType
	}
	return out, nil
}
