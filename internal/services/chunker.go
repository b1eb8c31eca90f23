package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits a resume into pieces small enough to embed one by one.
type TextChunker interface {
	Chunk(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// Chunk implements TextChunker. Paragraphs are accumulated until the next
// one would push the chunk past maxChunkSize; an oversized paragraph is
// hard-split on rune boundaries.
func (tc *textChunker) Chunk(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) > maxChunkSize {
			flush()
			for _, piece := range splitRunes(para, maxChunkSize) {
				chunks = append(chunks, piece)
			}
			continue
		}

		if current.Len()+len(para)+1 > maxChunkSize {
			flush()
		}

		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(para)
	}

	flush()

	return chunks
}

func splitRunes(text string, size int) []string {
	runes := []rune(text)

	var pieces []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}

	return pieces
}
