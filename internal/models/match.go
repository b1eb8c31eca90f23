package models

import (
	"time"

	"github.com/google/uuid"
)

// Match holds the similarity score for one (job, candidate) pairing.
// The composite unique index keeps at most one record per pairing; a
// recomputation updates the score in place.
type Match struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"candidate_id"`
	Score       float64   `gorm:"type:decimal(5,4);not null" json:"score"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}
