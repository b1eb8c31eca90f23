package main

import (
	"context"
	"log"

	"jakaprasetya/resume-matcher/internal/config"
	"jakaprasetya/resume-matcher/internal/repositories"
	"jakaprasetya/resume-matcher/internal/services"
)

// Re-embeds every stored candidate into the Qdrant collection. Useful after
// switching embedding models or wiping the vector store.
func main() {
	log.Println("🚀 Starting candidate reindex...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	candidateRepo := repositories.NewCandidateRepository(db)

	retryPolicy := services.NewRetryPolicy(cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryBaseDelay)
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, retryPolicy)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorIndex, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	candidates, err := candidateRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to list candidates: %v", err)
	}

	log.Printf("📋 Found %d candidates to reindex\n", len(candidates))

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, candidate := range candidates {
		log.Printf("📄 Reindexing %s (%s)", candidate.ID, candidate.OriginalFileName)

		if err := vectorIndex.DeleteCandidate(ctx, candidate.ID); err != nil {
			log.Printf("⚠️  Failed to delete old points for %s: %v", candidate.ID, err)
		}

		if err := vectorIndex.IndexCandidate(ctx, &candidate); err != nil {
			log.Printf("❌ Failed to index %s: %v", candidate.ID, err)
			failCount++
			continue
		}

		successCount++
	}

	log.Printf("✅ Reindex complete: %d succeeded, %d failed\n", successCount, failCount)
}
