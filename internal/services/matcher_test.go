package services

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors score one",
			a:    []float32{0.5, 0.5, 0.5},
			b:    []float32{0.5, 0.5, 0.5},
			want: 1.0,
		},
		{
			name: "orthogonal vectors score zero",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors clamp to zero",
			a:    []float32{1, 1},
			b:    []float32{-1, -1},
			want: 0.0,
		},
		{
			name: "empty vectors score zero",
			a:    []float32{},
			b:    []float32{},
			want: 0.0,
		},
		{
			name: "mismatched lengths score zero",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2},
			want: 0.0,
		},
		{
			name: "zero norm scores zero",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2, 0.9}
	b := []float32{0.1, 0.4, -0.5, 0.8}

	if got, want := CosineSimilarity(a, b), CosineSimilarity(b, a); got != want {
		t.Errorf("similarity is not symmetric: %v vs %v", got, want)
	}
}

func TestMatcherScoreEmptyInput(t *testing.T) {
	embedder := &stubEmbedder{}
	matcher := NewMatcherService(embedder)

	tests := []struct {
		name   string
		resume string
		job    string
	}{
		{"empty resume", "", "a job description"},
		{"empty job", "a resume", ""},
		{"whitespace only resume", "   \n\t", "a job description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := matcher.Score(context.Background(), tt.resume, tt.job)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if score != 0.0 {
				t.Errorf("Score() = %v, want 0.0", score)
			}
		})
	}

	if embedder.calls != 0 {
		t.Errorf("embedder was called %d times for empty input, want 0", embedder.calls)
	}
}

func TestMatcherScoreDeterministic(t *testing.T) {
	embedder := &stubEmbedder{
		vectors: map[string][]float32{
			"senior go engineer resume": {0.8, 0.1, 0.3},
			"go backend role":           {0.7, 0.2, 0.4},
		},
	}
	matcher := NewMatcherService(embedder)

	first, err := matcher.Score(context.Background(), "senior go engineer resume", "go backend role")
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	second, err := matcher.Score(context.Background(), "senior go engineer resume", "go backend role")
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if first != second {
		t.Errorf("scores differ for identical inputs: %v vs %v", first, second)
	}

	if first < 0.0 || first > 1.0 {
		t.Errorf("Score() = %v, want value in [0.0, 1.0]", first)
	}
}

func TestMatcherScoreEmbeddingFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	matcher := NewMatcherService(embedder)

	if _, err := matcher.Score(context.Background(), "a resume", "a job"); err == nil {
		t.Fatal("Score() expected error when embedding fails")
	}
}
