package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jakaprasetya/resume-matcher/internal/models"
)

type MatchRepository interface {
	// Upsert writes the score for the (job, candidate) pairing, updating the
	// existing record in place when one exists.
	Upsert(jobID, candidateID uuid.UUID, score float64) error
	FindByPairing(jobID, candidateID uuid.UUID) (*models.Match, error)
	// ListForJob returns stored match results joined with candidate info,
	// ordered by score descending.
	ListForJob(jobID uuid.UUID) ([]MatchWithCandidate, error)
	// Transaction runs fn against a repository bound to a single database
	// transaction. Any error rolls back every write made inside fn.
	Transaction(fn func(MatchRepository) error) error
}

type MatchWithCandidate struct {
	CandidateID uuid.UUID
	Filename    string
	Score       float64
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Upsert implements MatchRepository.
func (r *matchRepository) Upsert(jobID, candidateID uuid.UUID, score float64) error {
	match := models.Match{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Score:       score,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      score,
			"updated_at": time.Now(),
		}),
	}).Create(&match).Error

	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}

	return nil
}

// FindByPairing implements MatchRepository.
func (r *matchRepository) FindByPairing(jobID, candidateID uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		First(&match).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find match: %w", err)
	}

	return &match, nil
}

// ListForJob implements MatchRepository.
func (r *matchRepository) ListForJob(jobID uuid.UUID) ([]MatchWithCandidate, error) {
	var results []MatchWithCandidate
	err := r.db.Model(&models.Match{}).
		Select("matches.candidate_id, candidates.filename, matches.score").
		Joins("JOIN candidates ON candidates.id = matches.candidate_id").
		Where("matches.job_id = ?", jobID).
		Order("matches.score DESC").
		Scan(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return results, nil
}

// Transaction implements MatchRepository.
func (r *matchRepository) Transaction(fn func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&matchRepository{db: tx})
	})
}
