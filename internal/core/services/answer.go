package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// answerMaxTokens caps generated answer length.
const answerMaxTokens = 1024

// fallbackExcerptLen is how much of the top source the templated fallback
// answer echoes.
const fallbackExcerptLen = 300

// Synthesizer combines retrieved context with the user question to
// produce a grounded answer.
//
// The LLM service is optional: when it is nil or a call fails, the
// synthesizer falls back to a deterministic templated response so a
// query never fails outright on provider trouble.
type Synthesizer struct {
	llmService driven.LLMService
}

// NewSynthesizer creates a synthesizer. llmService may be nil.
func NewSynthesizer(llmService driven.LLMService) *Synthesizer {
	return &Synthesizer{llmService: llmService}
}

// Answer generates an answer to query grounded in the given sources.
func (s *Synthesizer) Answer(ctx context.Context, query string, sources []domain.DocumentSource) string {
	if s.llmService == nil {
		logger.Debug("No generation provider configured, using fallback answer")
		return s.fallback(query, sources)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: buildSystemPrompt(sources)},
		{Role: "user", Content: query},
	}

	answer, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{MaxTokens: answerMaxTokens})
	if err != nil {
		logger.Warn("Generation failed, using fallback answer: %v", err)
		return s.fallback(query, sources)
	}
	return answer
}

// buildSystemPrompt constrains generation strictly to the supplied
// context.
func buildSystemPrompt(sources []domain.DocumentSource) string {
	var sb strings.Builder
	sb.WriteString("You are a documentation assistant. Answer the user's question using ONLY the context below.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Answer strictly from the context. Never fabricate information.\n")
	sb.WriteString("- If the context does not contain the answer, say the information is not available in the documentation.\n")
	sb.WriteString("- Attribute claims to the source documents they come from.\n\n")
	sb.WriteString("Context:\n")

	for _, src := range sources {
		fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", src.Title, src.Content)
	}

	return sb.String()
}

// fallback builds the deterministic templated answer used when no
// generation provider is available.
func (s *Synthesizer) fallback(query string, sources []domain.DocumentSource) string {
	if len(sources) == 0 {
		return fmt.Sprintf(
			"No relevant documentation was found for %q. "+
				"Try uploading documents that cover this topic, or rephrase the question.",
			query)
	}

	top := sources[0]
	excerpt := top.Content
	if len(excerpt) > fallbackExcerptLen {
		excerpt = excerpt[:fallbackExcerptLen] + "..."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on %q:\n\n%s\n\n", top.Title, excerpt)
	sb.WriteString("Matched sources:\n")
	for _, src := range sources {
		fmt.Fprintf(&sb, "- %s (%.0f%% relevance)\n", src.Title, src.Score*100)
	}
	fmt.Fprintf(&sb, "\n%d source(s) matched your question.", len(sources))

	return sb.String()
}
