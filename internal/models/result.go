package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type AnalyzeRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	JobID       string `json:"job_id" validate:"required,uuid"`
}

type MatchResultResponse struct {
	CandidateID string  `json:"candidate_id"`
	Filename    string  `json:"candidate_filename"`
	Score       float64 `json:"score"`
}

type BulkAnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BulkResultResponse struct {
	ID           string              `json:"id"`
	Status       string              `json:"status"`
	Results      []BulkAnalysisEntry `json:"results,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
}

type SimilarCandidateResponse struct {
	CandidateID string  `json:"candidate_id"`
	Filename    string  `json:"candidate_filename"`
	Score       float32 `json:"score"`
}
