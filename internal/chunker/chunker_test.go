package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.targetSize != DefaultChunkSize {
			t.Errorf("expected targetSize %d, got %d", DefaultChunkSize, s.targetSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, s.overlap)
		}
	})

	t.Run("custom options", func(t *testing.T) {
		s := New(WithChunkSize(200), WithOverlap(30))
		if s.targetSize != 200 {
			t.Errorf("expected targetSize 200, got %d", s.targetSize)
		}
		if s.overlap != 30 {
			t.Errorf("expected overlap 30, got %d", s.overlap)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		if s.targetSize != DefaultChunkSize {
			t.Errorf("expected default targetSize, got %d", s.targetSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSplit_SmallContent(t *testing.T) {
	s := New(WithChunkSize(500), WithOverlap(50))
	chunks := s.Split("Deploy using Docker. Set OPENAI_API_KEY. Restart the service.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Deploy using Docker. Set OPENAI_API_KEY. Restart the service." {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestSplit_MultipleChunks(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("This sentence pads the buffer with a fair number of characters. ")
	}

	s := New(WithChunkSize(200), WithOverlap(50))
	chunks := s.Split(sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplit_OverlapCarriesTrailingWords(t *testing.T) {
	text := "Alpha bravo charlie delta echo. Foxtrot golf hotel india juliett. Kilo lima mike november oscar."

	// Each sentence is ~30 chars, so every sentence closes a chunk.
	// overlap 30 means 3 trailing words carry over.
	s := New(WithChunkSize(40), WithOverlap(30))
	chunks := s.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[1], "charlie delta echo.") {
		t.Errorf("expected second chunk to start with overlap words, got %q", chunks[1])
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "One sentence here. Another one there! A third, perhaps? And finally a trailing fragment"
	s := New(WithChunkSize(40), WithOverlap(20))

	first := s.Split(text)
	for i := 0; i < 10; i++ {
		again := s.Split(text)
		if len(again) != len(first) {
			t.Fatalf("run %d: chunk count changed: %d vs %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: chunk %d changed: %q vs %q", i, j, again[j], first[j])
			}
		}
	}
}

func TestSplit_CoversSentencesInOrder(t *testing.T) {
	text := "First sentence. Second sentence. Third sentence. Fourth sentence. Fifth sentence."
	s := New(WithChunkSize(35), WithOverlap(0))

	chunks := s.Split(text)
	joined := strings.Join(chunks, " ")

	for _, want := range []string{"First", "Second", "Third", "Fourth", "Fifth"} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunks lost sentence %q", want)
		}
	}

	// With zero overlap, order must be preserved and nothing duplicated.
	last := -1
	for _, want := range []string{"First", "Second", "Third", "Fourth", "Fifth"} {
		idx := strings.Index(joined, want)
		if idx <= last {
			t.Errorf("sentence %q out of order", want)
		}
		last = idx
	}
}

func TestSplit_UnsplittableText(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(0))

	chunks := s.Split("no terminal punctuation at all but longer than the target")
	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}

	// Whitespace-only input still yields the original text as one chunk.
	chunks = s.Split("   ")
	if len(chunks) != 1 || chunks[0] != "   " {
		t.Errorf("expected original text back, got %v", chunks)
	}
}
