package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jakaprasetya/resume-matcher/internal/models"
	"jakaprasetya/resume-matcher/internal/repositories"
	"jakaprasetya/resume-matcher/internal/services"
)

type MatchHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	matchRepo     repositories.MatchRepository
	orchestrator  services.MatchOrchestrator
	vectorIndex   services.VectorIndexService
}

func NewMatchHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	matchRepo repositories.MatchRepository,
	orchestrator services.MatchOrchestrator,
	vectorIndex services.VectorIndexService,
) *MatchHandler {
	return &MatchHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		matchRepo:     matchRepo,
		orchestrator:  orchestrator,
		vectorIndex:   vectorIndex,
	}
}

// HandleRunMatching handles POST /match/job/:id: scores every stored
// candidate against the job and returns the ranked results.
func (h *MatchHandler) HandleRunMatching(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list candidates",
		})
	}

	if len(candidates) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No candidates found to match against",
		})
	}

	results, err := h.orchestrator.MatchJobAgainstCandidates(c.Context(), job, candidates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An internal error occurred during matching",
		})
	}

	return c.JSON(results)
}

// HandleGetResults handles GET /match/job/:id: returns stored match
// results ordered by score descending.
func (h *MatchHandler) HandleGetResults(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	matches, err := h.matchRepo.ListForJob(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An internal error occurred",
		})
	}

	if len(matches) == 0 {
		return c.JSON(fiber.Map{
			"message": "No match results found for this job. Run the matching process first.",
		})
	}

	results := make([]models.MatchResultResponse, 0, len(matches))
	for _, match := range matches {
		results = append(results, models.MatchResultResponse{
			CandidateID: match.CandidateID.String(),
			Filename:    match.Filename,
			Score:       match.Score,
		})
	}

	return c.JSON(results)
}

// HandleSimilarCandidates handles GET /match/job/:id/similar: retrieves
// candidates from the vector index whose resumes are closest to the job
// description.
func (h *MatchHandler) HandleSimilarCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	limit := 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	hits, err := h.vectorIndex.SearchSimilar(c.Context(), job.Description, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to search similar candidates",
		})
	}

	results := make([]models.SimilarCandidateResponse, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.SimilarCandidateResponse{
			CandidateID: hit.CandidateID,
			Filename:    hit.Filename,
			Score:       hit.Score,
		})
	}

	return c.JSON(results)
}
