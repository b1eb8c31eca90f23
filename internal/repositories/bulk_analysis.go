package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jakaprasetya/resume-matcher/internal/models"
)

type BulkAnalysisRepository interface {
	Create(run *models.BulkAnalysis) error
	FindByID(id uuid.UUID) (*models.BulkAnalysis, error)
	UpdateStatus(id uuid.UUID, status models.BulkAnalysisStatus) error
	UpdateResults(id uuid.UUID, resultsJSON string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingRuns(limit int) ([]models.BulkAnalysis, error)
}

type bulkAnalysisRepository struct {
	db *gorm.DB
}

func NewBulkAnalysisRepository(db *gorm.DB) BulkAnalysisRepository {
	return &bulkAnalysisRepository{db: db}
}

func (r *bulkAnalysisRepository) Create(run *models.BulkAnalysis) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create bulk analysis: %w", err)
	}
	return nil
}

func (r *bulkAnalysisRepository) FindByID(id uuid.UUID) (*models.BulkAnalysis, error) {
	var run models.BulkAnalysis
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("bulk analysis not found")
		}
		return nil, fmt.Errorf("failed to find bulk analysis: %w", err)
	}
	return &run, nil
}

func (r *bulkAnalysisRepository) UpdateStatus(id uuid.UUID, status models.BulkAnalysisStatus) error {
	result := r.db.Model(&models.BulkAnalysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("bulk analysis not found")
	}

	return nil
}

func (r *bulkAnalysisRepository) UpdateResults(id uuid.UUID, resultsJSON string) error {
	result := r.db.Model(&models.BulkAnalysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.BulkStatusCompleted,
			"results":    resultsJSON,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update results: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("bulk analysis not found")
	}

	return nil
}

func (r *bulkAnalysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.BulkAnalysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.BulkStatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("bulk analysis not found")
	}

	return nil
}

func (r *bulkAnalysisRepository) FindPendingRuns(limit int) ([]models.BulkAnalysis, error) {
	var runs []models.BulkAnalysis
	err := r.db.
		Where("status = ?", models.BulkStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending runs: %w", err)
	}

	return runs, nil
}
