package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jakaprasetya/resume-matcher/internal/models"
	"jakaprasetya/resume-matcher/internal/repositories"
	"jakaprasetya/resume-matcher/internal/services"
)

type ResumeHandler struct {
	candidateRepo repositories.CandidateRepository
	storage       services.StorageService
	extractor     services.TextExtractor
	vectorIndex   services.VectorIndexService
	maxFileSize   int64
}

func NewResumeHandler(
	candidateRepo repositories.CandidateRepository,
	storage services.StorageService,
	extractor services.TextExtractor,
	vectorIndex services.VectorIndexService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		candidateRepo: candidateRepo,
		storage:       storage,
		extractor:     extractor,
		vectorIndex:   vectorIndex,
		maxFileSize:   maxFileSize,
	}
}

// HandleUpload handles POST /resumes: saves the file, extracts its text,
// persists the candidate, and indexes the resume embedding.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file provided. Upload a PDF or DOCX as 'resume'.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	rawText, err := h.extractor.Extract(filePath)
	if err != nil {
		h.storage.DeleteFile(filename)

		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported resume format. Only PDF and DOCX are accepted.",
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read resume: %v", err),
		})
	}

	if strings.TrimSpace(rawText) == "" {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No text could be extracted from the resume.",
		})
	}

	candidate := models.Candidate{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		RawText:          rawText,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.candidateRepo.Create(&candidate); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save candidate record: %v", err),
		})
	}

	// Index failures are not fatal to the upload; the candidate can still be
	// matched through the scoring path.
	if err := h.vectorIndex.IndexCandidate(c.Context(), &candidate); err != nil {
		log.Printf("⚠️  Failed to index candidate %s: %v\n", candidate.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Resume uploaded successfully",
		"candidate": models.UploadResponse{
			ID:           candidate.ID.String(),
			Filename:     candidate.Filename,
			OriginalName: candidate.OriginalFileName,
		},
	})
}

// HandleList handles GET /resumes.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list candidates",
		})
	}

	return c.JSON(fiber.Map{"candidates": candidates})
}
