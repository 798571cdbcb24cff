package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindfunnel/mindfunnel-api/internal/client"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReportWorker drains the report job queue one job at a time: claim the oldest
// pending job, generate the report, render and upload the PDF, store the
// report row, flip the job to done. Any failure marks the job error and the
// loop moves on; a failed job never takes the worker down with it.
type ReportWorker struct {
	jobs      repository.ReportJobRepository
	attempts  repository.QuizAttemptRepository
	prompts   repository.PromptRepository
	reports   repository.ReportRepository
	generator service.ReportGenerator
	renderer  service.DocumentRenderer
	storage   client.StorageClient

	pollInterval time.Duration
	jobTimeout   time.Duration
}

func NewReportWorker(
	jobs repository.ReportJobRepository,
	attempts repository.QuizAttemptRepository,
	prompts repository.PromptRepository,
	reports repository.ReportRepository,
	generator service.ReportGenerator,
	renderer service.DocumentRenderer,
	storage client.StorageClient,
	pollInterval time.Duration,
	jobTimeout time.Duration,
) *ReportWorker {
	return &ReportWorker{
		jobs:         jobs,
		attempts:     attempts,
		prompts:      prompts,
		reports:      reports,
		generator:    generator,
		renderer:     renderer,
		storage:      storage,
		pollInterval: pollInterval,
		jobTimeout:   jobTimeout,
	}
}

// Run polls until ctx is cancelled. When the queue is empty it sleeps for the
// poll interval; when a job was processed it immediately looks for the next one.
func (w *ReportWorker) Run(ctx context.Context) {
	log.Info().
		Dur("pollInterval", w.pollInterval).
		Dur("jobTimeout", w.jobTimeout).
		Msg("Report worker started")

	for {
		if ctx.Err() != nil {
			log.Info().Msg("Report worker stopped")
			return
		}

		processed, err := w.ProcessNext(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Queue poll failed")
		}
		if processed {
			continue
		}

		select {
		case <-ctx.Done():
		case <-time.After(w.pollInterval):
		}
	}
}

// ProcessNext claims and runs at most one job. It returns true when a job was
// claimed, whether it succeeded or not. The returned error covers only queue
// access itself; per-job failures are recorded on the job and logged.
func (w *ReportWorker) ProcessNext(ctx context.Context) (bool, error) {
	job, claimed, err := w.jobs.ClaimOldestPending()
	if err != nil {
		return false, fmt.Errorf("claim failed: %w", err)
	}
	if !claimed {
		return false, nil
	}

	log.Info().Str("jobID", job.ID).Str("attemptID", job.QuizAttemptID).Str("product", job.Product).Msg("Processing report job")

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	if err := w.process(jobCtx, job); err != nil {
		w.fail(job, err)
		return true, nil
	}
	if err := w.jobs.MarkDone(job.ID); err != nil {
		log.Error().Err(err).Str("jobID", job.ID).Msg("Failed to mark job done")
		return true, nil
	}
	log.Info().Str("jobID", job.ID).Msg("Report job completed")
	return true, nil
}

func (w *ReportWorker) process(ctx context.Context, job *model.ReportJob) error {
	// A report left behind by a previous crash means the work is already done;
	// just let MarkDone close the job out.
	existing, err := w.reports.FindByAttemptAndType(job.QuizAttemptID, job.Product)
	if err != nil {
		return fmt.Errorf("report lookup failed: %w", err)
	}
	if existing != nil {
		log.Warn().Str("jobID", job.ID).Msg("Report already exists for job, skipping generation")
		return nil
	}

	attempt, err := w.attempts.FindByID(job.QuizAttemptID)
	if err != nil {
		return fmt.Errorf("attempt lookup failed: %w", err)
	}

	prompt, err := w.prompts.FindByCategoryAndType(attempt.CategoryID, job.Product)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no %s prompt configured for category %s", job.Product, attempt.CategoryID)
		}
		return fmt.Errorf("prompt lookup failed: %w", err)
	}

	html, err := w.generator.GenerateReport(ctx, prompt.Template, attempt.Archetype, attempt.Answers)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	pdf, err := w.renderer.RenderPDF(ctx, html)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%s.pdf", attempt.ID, job.Product)
	pdfURL, err := w.storage.Upload(ctx, key, bytes.NewReader(pdf), "application/pdf")
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	report := &model.Report{
		QuizAttemptID: attempt.ID,
		Type:          job.Product,
		HTML:          html,
		PDFURL:        &pdfURL,
	}
	if err := w.reports.Create(report); err != nil {
		return fmt.Errorf("report insert failed: %w", err)
	}
	return nil
}

func (w *ReportWorker) fail(job *model.ReportJob, cause error) {
	log.Error().Err(cause).Str("jobID", job.ID).Str("attemptID", job.QuizAttemptID).Msg("Report job failed")
	if err := w.jobs.MarkError(job.ID, cause.Error()); err != nil {
		log.Error().Err(err).Str("jobID", job.ID).Msg("Failed to record job error")
	}
}
