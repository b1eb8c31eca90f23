package services

import (
	"strings"
	"testing"
)

func TestChunkAccumulatesParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	text := "first line\nsecond line\n\nthird line"
	chunks := chunker.Chunk(text, 100)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "first line\nsecond line\nthird line" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkSplitsAtBoundary(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("a", 40) + "\n" + strings.Repeat("b", 40)
	chunks := chunker.Chunk(text, 50)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}

	for _, chunk := range chunks {
		if len(chunk) > 50 {
			t.Errorf("chunk length %d exceeds limit", len(chunk))
		}
	}
}

func TestChunkHardSplitsOversizedParagraph(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("x", 120)
	chunks := chunker.Chunk(text, 50)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if got := len(chunks[0]) + len(chunks[1]) + len(chunks[2]); got != 120 {
		t.Errorf("chunks lost content: total %d runes, want 120", got)
	}
}

func TestChunkEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.Chunk("", 100); len(chunks) != 0 {
		t.Errorf("got %d chunks for empty input, want 0", len(chunks))
	}
	if chunks := chunker.Chunk("\n\n   \n", 100); len(chunks) != 0 {
		t.Errorf("got %d chunks for blank input, want 0", len(chunks))
	}
}
