package models

// Suitability labels a candidate's fit for a job as decided by the AI
// analysis path. "Error" marks a bulk entry whose processing failed.
type Suitability string

const (
	Suitable            Suitability = "Suitable"
	PotentiallySuitable Suitability = "Potentially Suitable"
	NotSuitable         Suitability = "Not Suitable"
	SuitabilityError    Suitability = "Error"
)

// Analysis is the normalized structured output of one AI resume analysis.
// It is built fresh per request and never persisted or mutated afterwards.
// MatchPercentage carries the "N/A" sentinel when the model's answer could
// not be parsed as a number; callers must treat "N/A" and empty lists as
// valid-but-unknown, not as errors.
type Analysis struct {
	MatchPercentage     string      `json:"match_percentage"`
	FoundKeywords       []string    `json:"found_keywords"`
	MissingKeywords     []string    `json:"missing_keywords"`
	KeyStrengths        []string    `json:"key_strengths"`
	AreasForImprovement []string    `json:"areas_for_improvement"`
	FormattingTips      []string    `json:"resume_formatting_tips"`
	Suitability         Suitability `json:"suitability,omitempty"`
}

// BulkAnalysisEntry is the per-file outcome of a bulk analysis run.
type BulkAnalysisEntry struct {
	Filename            string      `json:"filename"`
	Suitability         Suitability `json:"suitability"`
	MatchPercentage     string      `json:"match_percentage"`
	KeyStrengths        []string    `json:"key_strengths"`
	AreasForImprovement []string    `json:"areas_for_improvement"`
	Error               string      `json:"error,omitempty"`
}
