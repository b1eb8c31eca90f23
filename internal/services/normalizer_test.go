package services

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeStructuredWithSurroundingProse(t *testing.T) {
	normalizer := NewResponseNormalizer()

	raw := "Sure, here is the analysis you asked for:\n```json\n" +
		`{
			"match_percentage": "82",
			"found_keywords": ["Go", "PostgreSQL"],
			"missing_keywords": ["Kubernetes"],
			"key_strengths": ["Strong backend experience"],
			"areas_for_improvement": ["Add cloud certifications"],
			"resume_formatting_tips": ["Use bullet points"]
		}` + "\n```\nLet me know if you need anything else."

	analysis, err := normalizer.Normalize(raw, FormatStructured)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if analysis.MatchPercentage != "82" {
		t.Errorf("MatchPercentage = %q, want %q", analysis.MatchPercentage, "82")
	}
	if !reflect.DeepEqual(analysis.FoundKeywords, []string{"Go", "PostgreSQL"}) {
		t.Errorf("FoundKeywords = %v", analysis.FoundKeywords)
	}
	if !reflect.DeepEqual(analysis.MissingKeywords, []string{"Kubernetes"}) {
		t.Errorf("MissingKeywords = %v", analysis.MissingKeywords)
	}
}

func TestNormalizeStructuredMalformed(t *testing.T) {
	normalizer := NewResponseNormalizer()

	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I could not analyze this resume."},
		{"truncated json", `{"match_percentage": "82", "found_keyw`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.Normalize(tt.raw, FormatStructured)
			if err == nil {
				t.Fatal("Normalize() expected error")
			}

			var malformed *MalformedResponseError
			var incomplete *IncompleteResponseError
			if !errors.As(err, &malformed) && !errors.As(err, &incomplete) {
				t.Errorf("Normalize() error = %T, want malformed or incomplete response error", err)
			}
		})
	}
}

func TestNormalizeStructuredMissingKey(t *testing.T) {
	normalizer := NewResponseNormalizer()

	// missing_keywords is absent.
	raw := `{
		"match_percentage": "82",
		"found_keywords": ["Go"],
		"key_strengths": ["Experience"],
		"areas_for_improvement": ["Certs"],
		"resume_formatting_tips": ["Bullets"]
	}`

	_, err := normalizer.Normalize(raw, FormatStructured)

	var incomplete *IncompleteResponseError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Normalize() error = %v, want IncompleteResponseError", err)
	}
	if incomplete.Key != "missing_keywords" {
		t.Errorf("IncompleteResponseError.Key = %q, want %q", incomplete.Key, "missing_keywords")
	}
}

func TestNormalizeNarrative(t *testing.T) {
	normalizer := NewResponseNormalizer()

	raw := "**Suitability Assessment:** Strong fit for the role\n\n" +
		"**Key Strengths:**\n- Five years of Go experience\n- Led a platform migration\n\n" +
		"**Areas for Improvement:**\n- Limited frontend exposure\n\n" +
		"**Match Percentage:** 78%"

	analysis, err := normalizer.Normalize(raw, FormatNarrative)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if analysis.MatchPercentage != "78" {
		t.Errorf("MatchPercentage = %q, want %q (percent sign stripped)", analysis.MatchPercentage, "78")
	}

	wantStrengths := []string{"Five years of Go experience", "Led a platform migration"}
	if !reflect.DeepEqual(analysis.KeyStrengths, wantStrengths) {
		t.Errorf("KeyStrengths = %v, want %v", analysis.KeyStrengths, wantStrengths)
	}

	wantImprovements := []string{"Limited frontend exposure"}
	if !reflect.DeepEqual(analysis.AreasForImprovement, wantImprovements) {
		t.Errorf("AreasForImprovement = %v, want %v", analysis.AreasForImprovement, wantImprovements)
	}
}

func TestNormalizeNarrativeMissingSections(t *testing.T) {
	normalizer := NewResponseNormalizer()

	// No Key Strengths section, no Match Percentage.
	raw := "**Suitability Assessment:** Unclear\n\n" +
		"**Areas for Improvement:**\n- Resume too short"

	analysis, err := normalizer.Normalize(raw, FormatNarrative)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if len(analysis.KeyStrengths) != 0 {
		t.Errorf("KeyStrengths = %v, want empty", analysis.KeyStrengths)
	}
	if analysis.MatchPercentage != "N/A" {
		t.Errorf("MatchPercentage = %q, want N/A", analysis.MatchPercentage)
	}
}

func TestNormalizeNarrativeUnparseablePercentage(t *testing.T) {
	normalizer := NewResponseNormalizer()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "numeric with percent sign",
			raw:  "**Match Percentage:** 92%",
			want: "92",
		},
		{
			name: "numeric without percent sign",
			raw:  "**Match Percentage:** 65",
			want: "65",
		},
		{
			name: "prose instead of number",
			raw:  "**Match Percentage:** around seventy",
			want: "N/A",
		},
		{
			name: "section absent entirely",
			raw:  "**Suitability Assessment:** Fine",
			want: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := normalizer.Normalize(tt.raw, FormatNarrative)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if analysis.MatchPercentage != tt.want {
				t.Errorf("MatchPercentage = %q, want %q", analysis.MatchPercentage, tt.want)
			}
		})
	}
}

func TestSliceJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"prose around object", `noise {"a": 1} trailing`, `{"a": 1}`},
		{"no braces", "no json here", "{}"},
		{"only opening brace", "{ broken", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sliceJSONObject(tt.in); got != tt.want {
				t.Errorf("sliceJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
