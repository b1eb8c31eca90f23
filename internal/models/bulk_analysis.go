package models

import (
	"time"

	"github.com/google/uuid"
)

type BulkAnalysisStatus string

const (
	BulkStatusQueued     BulkAnalysisStatus = "queued"
	BulkStatusProcessing BulkAnalysisStatus = "processing"
	BulkStatusCompleted  BulkAnalysisStatus = "completed"
	BulkStatusFailed     BulkAnalysisStatus = "failed"
)

// BulkAnalysis tracks one async analysis run over an uploaded resume archive.
// Results holds the serialized []BulkAnalysisEntry once completed.
type BulkAnalysis struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobDescription string             `gorm:"type:text;not null" json:"job_description"`
	ArchivePath    string             `gorm:"type:text;not null" json:"archive_path"`
	Status         BulkAnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	Results        *string            `gorm:"type:text" json:"results,omitempty"`
	ErrorMessage   *string            `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BulkAnalysis) TableName() string {
	return "bulk_analyses"
}
