package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"jakaprasetya/resume-matcher/internal/models"
	"jakaprasetya/resume-matcher/internal/repositories"
)

// Worker processes queued bulk analysis runs in the background.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	bulkRepo     repositories.BulkAnalysisRepository
	orchestrator MatchOrchestrator
	archives     ArchiveExtractor
	runQueue     chan uuid.UUID
	concurrency  int
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	bulkRepo repositories.BulkAnalysisRepository,
	orchestrator MatchOrchestrator,
	archives ArchiveExtractor,
	concurrency int,
) Worker {
	return &worker{
		bulkRepo:     bulkRepo,
		orchestrator: orchestrator,
		archives:     archives,
		runQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingRuns(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.runQueue <- runID:
		log.Printf("📥 Bulk analysis %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.runQueue:
			log.Printf("👷 Worker #%d processing bulk analysis %s\n", workerID, runID)
			if err := w.processRun(ctx, runID); err != nil {
				log.Printf("❌ Worker #%d failed to process run %s: %v\n", workerID, runID, err)
			} else {
				log.Printf("✅ Worker #%d completed run %s\n", workerID, runID)
			}
		}
	}
}

func (w *worker) processRun(ctx context.Context, runID uuid.UUID) error {
	if err := w.bulkRepo.UpdateStatus(runID, models.BulkStatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	run, err := w.bulkRepo.FindByID(runID)
	if err != nil {
		w.bulkRepo.UpdateError(runID, err.Error())
		return fmt.Errorf("failed to get run: %w", err)
	}

	entries, err := w.archives.ExtractArchive(run.ArchivePath)
	if err != nil {
		w.bulkRepo.UpdateError(runID, fmt.Sprintf("Failed to read archive: %v", err))
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	// The archive is not needed again once its text is out.
	if err := os.Remove(run.ArchivePath); err != nil {
		log.Printf("⚠️  Failed to remove processed archive %s: %v\n", run.ArchivePath, err)
	}

	if len(entries) == 0 {
		w.bulkRepo.UpdateError(runID, "No readable resumes found in archive")
		return fmt.Errorf("no readable resumes in archive for run %s", runID)
	}

	results := w.orchestrator.AnalyzeBulk(ctx, entries, run.JobDescription)

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		w.bulkRepo.UpdateError(runID, fmt.Sprintf("Failed to serialize results: %v", err))
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := w.bulkRepo.UpdateResults(runID, string(resultsJSON)); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	return nil
}

func (w *worker) pollPendingRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending runs poller stopped")
			return
		case <-ticker.C:
			pending, err := w.bulkRepo.FindPendingRuns(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending runs: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending bulk analyses\n", len(pending))
			}

			for _, run := range pending {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
