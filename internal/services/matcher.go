package services

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// EmbeddingProvider turns a text into a fixed-length dense vector. The
// concrete provider is constructed once at startup and injected, so tests
// can run against a fake.
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// MatcherService scores how well a resume fits a job description using
// embedding vectors and cosine similarity.
type MatcherService interface {
	Score(ctx context.Context, resumeText, jobDescription string) (float64, error)
}

type matcherService struct {
	embedder EmbeddingProvider
}

func NewMatcherService(embedder EmbeddingProvider) MatcherService {
	return &matcherService{embedder: embedder}
}

// Score implements MatcherService. Empty inputs score 0.0 without touching
// the embedding provider. For a fixed provider the result is deterministic.
func (m *matcherService) Score(ctx context.Context, resumeText, jobDescription string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return 0.0, nil
	}

	resumeVec, err := m.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return 0.0, fmt.Errorf("failed to embed resume: %w", err)
	}

	jobVec, err := m.embedder.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return 0.0, fmt.Errorf("failed to embed job description: %w", err)
	}

	return CosineSimilarity(resumeVec, jobVec), nil
}

// CosineSimilarity computes dot(a,b) / (norm(a)*norm(b)) clamped into
// [0.0, 1.0]. A zero-norm vector (degenerate or out-of-vocabulary text)
// scores 0.0 instead of dividing by zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp floating-point overshoot into the valid range.
	if similarity < 0.0 {
		return 0.0
	}
	if similarity > 1.0 {
		return 1.0
	}

	return similarity
}
