// Package extract pulls plain text out of uploaded files so the keyword
// pipeline has something to analyze. Formats it cannot read yield empty
// text, never an error: extraction failure must not fail an upload.
package extract

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor implements the TextExtractor port.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a text extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the plain text of an upload. Plain text and markdown
// pass through as-is; PDFs go through page-by-page extraction; images and
// word-processor formats yield empty text.
func (e *Extractor) Extract(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	switch mimeType {
	case "text/plain", "text/markdown":
		return string(data), nil
	case "application/pdf":
		return e.extractPDF(ctx, filename, data), nil
	default:
		return "", nil
	}
}

// extractPDF reads text content from every page. A malformed PDF logs and
// degrades to empty text.
func (e *Extractor) extractPDF(ctx context.Context, filename string, data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("pdf unreadable, skipping extraction",
			zap.String("file", filename),
			zap.Error(err),
		)
		return ""
	}

	var sb strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		if ctx.Err() != nil {
			break
		}

		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("pdf page extraction failed",
				zap.String("file", filename),
				zap.Int("page", page),
				zap.Error(err),
			)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
