package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

func TestSupports(t *testing.T) {
	e := New()

	assert.True(t, e.Supports("txt"))
	assert.True(t, e.Supports(".md"))
	assert.True(t, e.Supports("PDF"))
	assert.True(t, e.Supports("docx"))
	assert.False(t, e.Supports("exe"))
	assert.False(t, e.Supports(""))
}

func TestExtract_PlainText(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), "txt", []byte("Deploy using Docker."))
	require.NoError(t, err)
	assert.Equal(t, "Deploy using Docker.", text)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), "txt", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_StubbedFormats(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), "pdf", []byte("%PDF-1.4 ..."))
	require.NoError(t, err)
	assert.Contains(t, text, "PDF content extraction not available")
}

func TestExtract_UnsupportedType(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), "exe", []byte("MZ"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
