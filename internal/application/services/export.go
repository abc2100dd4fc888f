package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	apperrors "github.com/reglet-dev/chartopts/internal/application/errors"
	"github.com/reglet-dev/chartopts/internal/application/ports"
	"github.com/reglet-dev/chartopts/internal/domain/chart"
)

// ExportService renders documents through a remote export server.
type ExportService struct {
	docs     documents
	renderer ports.Renderer
}

// NewExportService creates a new export service.
func NewExportService(loader ports.DocumentLoader, renderer ports.Renderer, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{docs: documents{loader: loader, logger: logger}, renderer: renderer}
}

// Export validates the document locally, then sends its trimmed form to the
// renderer. The theme travels separately as global options.
func (s *ExportService) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	start := time.Now()
	if s.renderer == nil {
		return nil, apperrors.NewConfigurationError("export", "no renderer configured", nil)
	}

	doc, err := s.docs.load(req.Document, req.Path)
	if err != nil {
		return nil, err
	}
	source := sourceName(req.Path)
	rec, err := s.docs.decode(source, doc, req.Strict)
	if err != nil {
		return nil, err
	}

	var global map[string]any
	if req.Theme != nil {
		themeRec, err := s.docs.decode("theme", req.Theme, req.Strict)
		if err != nil {
			return nil, err
		}
		global = chart.Encode(themeRec)
	}

	requestID := req.Metadata.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	s.docs.logger.Info("exporting chart", "source", source, "format", req.Settings.Format, "request_id", requestID)
	body, err := s.renderer.Render(ctx, dto.RenderRequest{
		Options:       chart.Encode(rec),
		GlobalOptions: global,
		Settings:      req.Settings,
		RequestID:     requestID,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ExportResponse{
		Body:   body,
		Format: req.Settings.Format,
		Metadata: dto.ResponseMetadata{
			RequestID:   requestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(start),
		},
	}, nil
}
