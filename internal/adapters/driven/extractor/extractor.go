// Package extractor turns uploaded raw bytes into plain text.
//
// Plain-text-like formats are decoded directly. PDF and DOCX are
// deliberately stubbed: they are accepted at upload but yield a
// placeholder string, keeping real extraction outside the engine.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.ContentExtractor = (*Extractor)(nil)

// plainTypes are formats decoded directly as UTF-8 text.
var plainTypes = map[string]bool{
	"txt":  true,
	"md":   true,
	"text": true,
	"log":  true,
	"csv":  true,
	"json": true,
}

// stubTypes are formats accepted but not really extracted.
var stubTypes = map[string]bool{
	"pdf":  true,
	"docx": true,
}

// Extractor decodes uploads by declared file type.
type Extractor struct{}

// New creates a content extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file type can be accepted at upload.
func (e *Extractor) Supports(fileType string) bool {
	fileType = normalise(fileType)
	return plainTypes[fileType] || stubTypes[fileType]
}

// Extract decodes the raw upload into plain text.
func (e *Extractor) Extract(_ context.Context, fileType string, data []byte) (string, error) {
	fileType = normalise(fileType)

	switch {
	case plainTypes[fileType]:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: content is not valid UTF-8", domain.ErrExtractionFailed)
		}
		return string(data), nil

	case stubTypes[fileType]:
		// Real PDF/DOCX extraction lives outside the engine; the stub keeps
		// the lifecycle exercisable for these types.
		return fmt.Sprintf("[%s content extraction not available - %d bytes uploaded]",
			strings.ToUpper(fileType), len(data)), nil

	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, fileType)
	}
}

// normalise lowercases the tag and strips a leading dot.
func normalise(fileType string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
}
