// Package chunker provides deterministic sentence-based text chunking.
package chunker

import "strings"

// DefaultChunkSize is the default target number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default overlap hint in characters. The number of
// words carried between adjacent chunks is the hint divided by ten.
const DefaultOverlap = 50

// Splitter splits text into overlapping chunks of roughly targetSize
// characters, closing chunks on sentence boundaries.
type Splitter struct {
	targetSize int
	overlap    int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.targetSize = size
		}
	}
}

// WithOverlap sets the overlap hint in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		targetSize: DefaultChunkSize,
		overlap:    DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split breaks text into an ordered sequence of non-empty chunks.
//
// Sentences are accumulated greedily; when the next sentence would push
// the buffer past the target size the chunk is closed and the next buffer
// is seeded with the closed chunk's trailing words (overlap/10 words).
// If nothing was produced the original text is returned as a single
// chunk, so the result is never empty for non-empty input. The same input
// and parameters always yield the same sequence.
func (s *Splitter) Split(text string) []string {
	sentences := splitSentences(text)

	var chunks []string
	var buf string

	for _, sentence := range sentences {
		candidate := sentence
		if buf != "" {
			candidate = buf + " " + sentence
		}
		if len(candidate) > s.targetSize && buf != "" {
			closed := strings.TrimSpace(buf)
			chunks = append(chunks, closed)
			buf = tailWords(closed, s.overlap/10)
			if buf != "" {
				buf += " " + sentence
			} else {
				buf = sentence
			}
			continue
		}
		buf = candidate
	}

	if strings.TrimSpace(buf) != "" {
		chunks = append(chunks, strings.TrimSpace(buf))
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// splitSentences cuts text into sentence-like units on terminal
// punctuation. A trailing fragment without punctuation is kept as its own
// unit; empty fragments are discarded.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}

	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}

// tailWords returns the last n whitespace-separated words of s.
func tailWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}
