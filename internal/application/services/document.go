// Package services contains application use cases.
package services

import (
	"log/slog"

	"github.com/reglet-dev/chartopts/internal/application/ports"
	apperrors "github.com/reglet-dev/chartopts/internal/application/errors"
	"github.com/reglet-dev/chartopts/internal/domain/chart"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

// documents loads request documents and decodes them into options graphs.
type documents struct {
	loader ports.DocumentLoader
	logger *slog.Logger
}

// load returns doc when given, or reads path.
func (d documents) load(doc map[string]any, path string) (map[string]any, error) {
	if doc != nil {
		return doc, nil
	}
	if path == "" {
		return nil, apperrors.NewValidationError("path", "no document or path given")
	}
	if d.loader == nil {
		return nil, apperrors.NewConfigurationError("loader", "no document loader configured", nil)
	}
	loaded, err := d.loader.LoadDocument(path)
	if err != nil {
		return nil, apperrors.NewDocumentError(path, "failed to load", err)
	}
	return loaded, nil
}

func (d documents) decodeOptions(strict bool) []schema.DecodeOption {
	return []schema.DecodeOption{schema.Strict(strict), schema.WithLogger(d.logger)}
}

// decode builds the options graph of doc.
func (d documents) decode(source string, doc map[string]any, strict bool) (*schema.Record, error) {
	rec, err := chart.Decode(doc, d.decodeOptions(strict)...)
	if err != nil {
		return nil, apperrors.NewDocumentError(source, "failed to decode", err)
	}
	return rec, nil
}

func sourceName(path string) string {
	if path == "" {
		return "(inline)"
	}
	return path
}
