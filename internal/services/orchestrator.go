package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"jakaprasetya/resume-matcher/internal/models"
	"jakaprasetya/resume-matcher/internal/repositories"
)

// Suitability thresholds. The two code paths intentionally use different
// policies: the individual analysis path classifies into three tiers, the
// bulk path into two with a strict greater-than boundary. Unifying them is
// a product decision, not a refactor.
const (
	suitableThreshold            = 75.0
	potentiallySuitableThreshold = 50.0
	bulkSuitableThreshold        = 70.0
)

// Analysis inputs shorter than this are rejected as too short to be a real
// resume or job description.
const minAnalysisInputLength = 50

const analysisTemperature = 0.5

// TextCompleter is the opaque text-completion capability: prompt in,
// response text out. Implementations retry transient failures internally.
type TextCompleter interface {
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32) (string, error)
}

// MatchOrchestrator coordinates scoring and AI analysis across candidates.
type MatchOrchestrator interface {
	// MatchJobAgainstCandidates scores every candidate against the job,
	// upserts the match records in one transaction, and returns the results
	// ranked by score descending.
	MatchJobAgainstCandidates(ctx context.Context, job *models.Job, candidates []models.Candidate) ([]models.MatchResultResponse, error)
	// AnalyzeIndividual runs the structured analysis path for one resume.
	AnalyzeIndividual(ctx context.Context, resumeText, jobDescription string) (*models.Analysis, error)
	// AnalyzeBulk runs the narrative analysis path over archive entries,
	// best-effort: a failing entry becomes an Error row, not an abort.
	AnalyzeBulk(ctx context.Context, entries []ArchiveEntry, jobDescription string) []models.BulkAnalysisEntry
}

type matchOrchestrator struct {
	matcher    MatcherService
	matchRepo  repositories.MatchRepository
	completer  TextCompleter
	normalizer ResponseNormalizer
	prompts    *PromptBuilder
}

func NewMatchOrchestrator(
	matcher MatcherService,
	matchRepo repositories.MatchRepository,
	completer TextCompleter,
	normalizer ResponseNormalizer,
) MatchOrchestrator {
	return &matchOrchestrator{
		matcher:    matcher,
		matchRepo:  matchRepo,
		completer:  completer,
		normalizer: normalizer,
		prompts:    NewPromptBuilder(),
	}
}

// MatchJobAgainstCandidates implements MatchOrchestrator. The batch commit
// is all-or-nothing: any failure rolls back every pending upsert.
func (o *matchOrchestrator) MatchJobAgainstCandidates(ctx context.Context, job *models.Job, candidates []models.Candidate) ([]models.MatchResultResponse, error) {
	results := make([]models.MatchResultResponse, 0, len(candidates))

	err := o.matchRepo.Transaction(func(tx repositories.MatchRepository) error {
		for _, candidate := range candidates {
			score, err := o.matcher.Score(ctx, candidate.RawText, job.Description)
			if err != nil {
				return fmt.Errorf("failed to score candidate %s: %w", candidate.ID, err)
			}

			if err := tx.Upsert(job.ID, candidate.ID, score); err != nil {
				return err
			}

			results = append(results, models.MatchResultResponse{
				CandidateID: candidate.ID.String(),
				Filename:    candidate.Filename,
				Score:       score,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matching batch failed for job %s: %w", job.ID, err)
	}

	// Stable sort keeps the original candidate order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	log.Printf("✅ Matched %d candidates for job %s\n", len(candidates), job.ID)

	return results, nil
}

// AnalyzeIndividual implements MatchOrchestrator.
func (o *matchOrchestrator) AnalyzeIndividual(ctx context.Context, resumeText, jobDescription string) (*models.Analysis, error) {
	if err := validateAnalysisInput(resumeText, jobDescription); err != nil {
		return nil, err
	}

	prompt := o.prompts.BuildIndividualAnalysisPrompt(resumeText, jobDescription)

	response, err := o.completer.GenerateTextWithRetry(ctx, prompt, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	analysis, err := o.normalizer.Normalize(response, FormatStructured)
	if err != nil {
		log.Printf("❌ Failed to normalize analysis response: %v (response: %s)\n",
			err, truncateForLog(response, 200))
		return nil, err
	}

	analysis.Suitability = DetermineSuitability(parseMatchScore(analysis.MatchPercentage))

	return analysis, nil
}

// AnalyzeBulk implements MatchOrchestrator.
func (o *matchOrchestrator) AnalyzeBulk(ctx context.Context, entries []ArchiveEntry, jobDescription string) []models.BulkAnalysisEntry {
	results := make([]models.BulkAnalysisEntry, 0, len(entries))

	for _, entry := range entries {
		log.Printf("🤖 Analyzing resume %s (%s)\n", entry.Filename, truncateForLog(entry.Text, 80))

		prompt := o.prompts.BuildBulkAnalysisPrompt(entry.Text, jobDescription)

		response, err := o.completer.GenerateTextWithRetry(ctx, prompt, analysisTemperature)
		if err != nil {
			log.Printf("❌ Analysis failed for %s: %v\n", entry.Filename, err)
			results = append(results, errorEntry(entry.Filename, err))
			continue
		}

		analysis, err := o.normalizer.Normalize(response, FormatNarrative)
		if err != nil {
			// Narrative normalization never fails today; guard anyway.
			results = append(results, errorEntry(entry.Filename, err))
			continue
		}

		results = append(results, models.BulkAnalysisEntry{
			Filename:            entry.Filename,
			Suitability:         BulkSuitability(parseMatchScore(analysis.MatchPercentage)),
			MatchPercentage:     analysis.MatchPercentage,
			KeyStrengths:        analysis.KeyStrengths,
			AreasForImprovement: analysis.AreasForImprovement,
		})
	}

	return results
}

// DetermineSuitability classifies a 0-100 match score into the three-tier
// policy used by the individual analysis path.
func DetermineSuitability(matchScore float64) models.Suitability {
	switch {
	case matchScore >= suitableThreshold:
		return models.Suitable
	case matchScore >= potentiallySuitableThreshold:
		return models.PotentiallySuitable
	default:
		return models.NotSuitable
	}
}

// BulkSuitability classifies a 0-100 match score into the binary policy
// used by the bulk path. The boundary is strictly greater-than.
func BulkSuitability(matchScore float64) models.Suitability {
	if matchScore > bulkSuitableThreshold {
		return models.Suitable
	}
	return models.NotSuitable
}

// parseMatchScore reads a percentage string ("82", "82%", "N/A") as a
// number, defaulting to 0 when unparseable.
func parseMatchScore(value string) float64 {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	score, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return score
}

func validateAnalysisInput(resumeText, jobDescription string) error {
	if len(strings.TrimSpace(resumeText)) < minAnalysisInputLength {
		return fmt.Errorf("resume text appears too short to be valid")
	}
	if len(strings.TrimSpace(jobDescription)) < minAnalysisInputLength {
		return fmt.Errorf("job description appears too short to be valid")
	}
	return nil
}

func errorEntry(filename string, err error) models.BulkAnalysisEntry {
	return models.BulkAnalysisEntry{
		Filename:            filename,
		Suitability:         models.SuitabilityError,
		MatchPercentage:     naSentinel,
		KeyStrengths:        []string{},
		AreasForImprovement: []string{},
		Error:               fmt.Sprintf("error during processing: %v", err),
	}
}
