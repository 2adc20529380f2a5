// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/docsum/internal/domain"
)

// ErrEmptyDocument is returned when there are no bytes to parse.
var ErrEmptyDocument = errors.New("empty document")

// Extractor turns raw document bytes into unstructured text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ForKind returns the extractor that handles kind.
func ForKind(kind domain.DocumentKind) (Extractor, error) {
	switch kind {
	case domain.DocumentKindPDF:
		return NewPDFExtractor(), nil
	case domain.DocumentKindPPTX:
		return NewPPTXExtractor(), nil
	default:
		return nil, fmt.Errorf("no extractor for document kind %q", kind)
	}
}
