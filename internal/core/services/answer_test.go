package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

func sampleSources() []domain.DocumentSource {
	return []domain.DocumentSource{
		{DocumentID: "guide", Title: "guide.txt", Content: "Deploy using Docker. Set OPENAI_API_KEY. Restart the service.", Score: 0.92},
		{DocumentID: "faq", Title: "faq.md", Content: "Common questions about deployment.", Score: 0.75},
	}
}

func TestAnswer_UsesLLMWhenAvailable(t *testing.T) {
	llm := &mockLLM{response: "Deploy the service with Docker."}
	s := NewSynthesizer(llm)

	answer := s.Answer(context.Background(), "How do I deploy?", sampleSources())
	assert.Equal(t, "Deploy the service with Docker.", answer)

	// The system instruction carries the grounding rules and context.
	require.Len(t, llm.messages, 2)
	system := llm.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "ONLY the context")
	assert.Contains(t, system.Content, "Never fabricate")
	assert.Contains(t, system.Content, "guide.txt")
	assert.Contains(t, system.Content, "Deploy using Docker.")
	assert.Equal(t, "user", llm.messages[1].Role)
	assert.Equal(t, "How do I deploy?", llm.messages[1].Content)
}

func TestAnswer_FallsBackOnLLMFailure(t *testing.T) {
	llm := &mockLLM{err: errors.New("provider down")}
	s := NewSynthesizer(llm)

	answer := s.Answer(context.Background(), "How do I deploy?", sampleSources())
	assert.Contains(t, answer, "guide.txt")
	assert.Contains(t, answer, "92% relevance")
}

func TestAnswer_FallbackWithoutSources(t *testing.T) {
	s := NewSynthesizer(nil)

	answer := s.Answer(context.Background(), "How do I deploy?", nil)
	assert.Contains(t, answer, "No relevant documentation was found")
	assert.Contains(t, answer, `"How do I deploy?"`)
	assert.Contains(t, answer, "uploading documents")
}

func TestAnswer_FallbackWithSources(t *testing.T) {
	s := NewSynthesizer(nil)

	answer := s.Answer(context.Background(), "How do I deploy?", sampleSources())

	assert.Contains(t, answer, "Deploy using Docker.")
	assert.Contains(t, answer, "guide.txt")
	assert.Contains(t, answer, "faq.md")
	assert.Contains(t, answer, "92% relevance")
	assert.Contains(t, answer, "75% relevance")
	assert.Contains(t, answer, "2 source(s) matched")
}

func TestAnswer_FallbackDeterministic(t *testing.T) {
	s := NewSynthesizer(nil)
	ctx := context.Background()

	first := s.Answer(ctx, "How do I deploy?", sampleSources())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Answer(ctx, "How do I deploy?", sampleSources()))
	}
}

func TestAnswer_FallbackTruncatesLongExcerpt(t *testing.T) {
	s := NewSynthesizer(nil)
	long := strings.Repeat("All work and no play makes for dull documentation. ", 20)

	answer := s.Answer(context.Background(), "anything", []domain.DocumentSource{
		{DocumentID: "big", Title: "big.txt", Content: long, Score: 0.5},
	})
	assert.Contains(t, answer, "...")
	assert.Less(t, len(answer), len(long))
}
