package driven

import "context"

// LLMService provides answer generation for the synthesizer.
// This is an optional service - when nil, answers fall back to the
// deterministic template built from retrieved sources.
type LLMService interface {
	// Chat conducts a single-turn conversation and returns the completion
	// text. The message list carries the grounding system instruction
	// followed by the user question.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
