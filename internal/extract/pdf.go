package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultPageSeparator is inserted between the text of consecutive pages.
const DefaultPageSeparator = "\n"

// PDFExtractor extracts the plain text of every page of a PDF.
type PDFExtractor struct {
	pageSeparator string
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{pageSeparator: DefaultPageSeparator}
}

// Extract parses data as a PDF and returns the text of all pages in order.
// Pages without a content stream contribute nothing.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	// The parser panics on some malformed inputs instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		if b.Len() > 0 {
			b.WriteString(e.pageSeparator)
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}
