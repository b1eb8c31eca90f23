package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"jakaprasetya/resume-matcher/internal/models"
)

// ResponseFormat selects the contract the AI response is expected to honor.
// The prompt template and the parser for a format evolve together.
type ResponseFormat string

const (
	// FormatStructured expects a JSON object, possibly surrounded by prose.
	FormatStructured ResponseFormat = "structured"
	// FormatNarrative expects blank-line-separated Markdown-style sections.
	FormatNarrative ResponseFormat = "narrative"
)

// Narrative section labels. These must match the bulk analysis prompt.
const (
	labelSuitability  = "**Suitability Assessment:**"
	labelStrengths    = "**Key Strengths:**"
	labelImprovements = "**Areas for Improvement:**"
	labelPercentage   = "**Match Percentage:**"
)

// naSentinel marks a scalar field the model did not answer or answered
// unparseably. Callers must treat it as valid-but-unknown, not an error.
const naSentinel = "N/A"

var structuredRequiredKeys = []string{
	"match_percentage",
	"found_keywords",
	"missing_keywords",
	"key_strengths",
	"areas_for_improvement",
	"resume_formatting_tips",
}

// ResponseNormalizer turns a free-form AI response into a strict Analysis.
type ResponseNormalizer interface {
	Normalize(raw string, format ResponseFormat) (*models.Analysis, error)
}

type responseNormalizer struct{}

func NewResponseNormalizer() ResponseNormalizer {
	return &responseNormalizer{}
}

// Normalize implements ResponseNormalizer.
func (n *responseNormalizer) Normalize(raw string, format ResponseFormat) (*models.Analysis, error) {
	switch format {
	case FormatNarrative:
		return n.parseNarrative(raw), nil
	default:
		return n.parseStructured(raw)
	}
}

// parseStructured slices the first '{' to the last '}' out of the response
// and parses it as JSON. Only total unparseability is fatal; a missing
// bracket pair degrades to an empty object, which then fails the required
// key check with the name of the first absent key.
func (n *responseNormalizer) parseStructured(raw string) (*models.Analysis, error) {
	sliced := sliceJSONObject(raw)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(sliced), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	for _, key := range structuredRequiredKeys {
		if _, ok := fields[key]; !ok {
			return nil, &IncompleteResponseError{Key: key}
		}
	}

	return &models.Analysis{
		MatchPercentage:     coerceString(fields["match_percentage"]),
		FoundKeywords:       coerceStringSlice(fields["found_keywords"]),
		MissingKeywords:     coerceStringSlice(fields["missing_keywords"]),
		KeyStrengths:        coerceStringSlice(fields["key_strengths"]),
		AreasForImprovement: coerceStringSlice(fields["areas_for_improvement"]),
		FormattingTips:      coerceStringSlice(fields["resume_formatting_tips"]),
	}, nil
}

// parseNarrative scrapes the blank-line-separated sections of a bulk
// analysis response. A missing or malformed section yields its documented
// default instead of failing the rest of the extraction.
func (n *responseNormalizer) parseNarrative(raw string) *models.Analysis {
	sections := strings.Split(raw, "\n\n")

	analysis := &models.Analysis{
		MatchPercentage:     naSentinel,
		FoundKeywords:       []string{},
		MissingKeywords:     []string{},
		KeyStrengths:        []string{},
		AreasForImprovement: []string{},
		FormattingTips:      []string{},
	}

	if assessment := scalarSection(sections, labelSuitability); assessment != "" {
		analysis.Suitability = models.Suitability(assessment)
	}

	analysis.KeyStrengths = listSection(sections, labelStrengths)
	analysis.AreasForImprovement = listSection(sections, labelImprovements)

	if percentage := scalarSection(sections, labelPercentage); percentage != "" {
		analysis.MatchPercentage = normalizePercentage(percentage)
	}

	return analysis
}

// sliceJSONObject returns the substring between the first '{' and the last
// '}' inclusive, or an empty object when no such pair exists.
func sliceJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return "{}"
}

// scalarSection finds the section introduced by label and returns its text
// with the label stripped, or "" when no section matches.
func scalarSection(sections []string, label string) string {
	for _, section := range sections {
		if strings.HasPrefix(section, label) {
			return strings.TrimSpace(strings.TrimPrefix(section, label))
		}
	}
	return ""
}

// listSection splits the bullet lines of a labelled section on the
// line-initial dash marker. Splitting leaves an empty first fragment when
// the list starts on its own line; it is dropped rather than returned as an
// artifact item.
func listSection(sections []string, label string) []string {
	for _, section := range sections {
		if !strings.HasPrefix(section, label) {
			continue
		}

		body := strings.TrimSpace(strings.TrimPrefix(section, label))
		items := strings.Split(body, "\n- ")
		if len(items) > 0 && items[0] == "" {
			items = items[1:]
		}

		cleaned := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(strings.TrimPrefix(item, "- ")); item != "" {
				cleaned = append(cleaned, item)
			}
		}
		return cleaned
	}
	return []string{}
}

// normalizePercentage strips a trailing '%' and verifies the remainder is
// numeric, defaulting to the N/A sentinel otherwise.
func normalizePercentage(value string) string {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if value == "" {
		return naSentinel
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return naSentinel
	}
	return value
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return naSentinel
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}
