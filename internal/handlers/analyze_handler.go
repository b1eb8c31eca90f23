package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jakaprasetya/resume-matcher/internal/models"
	"jakaprasetya/resume-matcher/internal/repositories"
	"jakaprasetya/resume-matcher/internal/services"
)

type AnalyzeHandler struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	bulkRepo      repositories.BulkAnalysisRepository
	storage       services.StorageService
	orchestrator  services.MatchOrchestrator
	worker        services.Worker
	maxFileSize   int64
}

func NewAnalyzeHandler(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	bulkRepo repositories.BulkAnalysisRepository,
	storage services.StorageService,
	orchestrator services.MatchOrchestrator,
	worker services.Worker,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		bulkRepo:      bulkRepo,
		storage:       storage,
		orchestrator:  orchestrator,
		worker:        worker,
		maxFileSize:   maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: runs the structured analysis path
// for one stored candidate against one job.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	analysis, err := h.orchestrator.AnalyzeIndividual(c.Context(), candidate.RawText, job.Description)
	if err != nil {
		var malformed *services.MalformedResponseError
		var incomplete *services.IncompleteResponseError
		if errors.As(err, &malformed) || errors.As(err, &incomplete) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": fmt.Sprintf("AI analysis produced unusable output: %v", err),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to analyze resume: %v", err),
		})
	}

	return c.JSON(analysis)
}

// HandleBulkAnalyze handles POST /analyze/bulk: accepts a ZIP of resumes
// plus a job description and queues an async bulk analysis run.
func (h *AnalyzeHandler) HandleBulkAnalyze(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	file, err := c.FormFile("archive")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No archive provided. Upload a ZIP of resumes as 'archive'.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Archive too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveArchive(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save archive: %v", err),
		})
	}

	run := &models.BulkAnalysis{
		ID:             uuid.New(),
		JobDescription: jobDescription,
		ArchivePath:    filePath,
		Status:         models.BulkStatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.bulkRepo.Create(run); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create bulk analysis run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.BulkAnalyzeResponse{
		ID:     run.ID.String(),
		Status: string(models.BulkStatusQueued),
	})
}

// HandleGetBulkResult handles GET /analyze/bulk/:id.
func (h *AnalyzeHandler) HandleGetBulkResult(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bulk analysis ID format",
		})
	}

	run, err := h.bulkRepo.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bulk analysis not found",
		})
	}

	response := models.BulkResultResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	}

	if run.Status == models.BulkStatusCompleted && run.Results != nil {
		var entries []models.BulkAnalysisEntry
		if err := json.Unmarshal([]byte(*run.Results), &entries); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to decode stored results",
			})
		}
		response.Results = entries
	}

	if run.Status == models.BulkStatusFailed {
		response.ErrorMessage = run.ErrorMessage
	}

	return c.JSON(response)
}
