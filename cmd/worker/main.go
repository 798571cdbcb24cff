package main

import (
	"context"

	"github.com/mindfunnel/mindfunnel-api/config"
	"github.com/mindfunnel/mindfunnel-api/database"
	"github.com/mindfunnel/mindfunnel-api/internal/client"
	"github.com/mindfunnel/mindfunnel-api/internal/logger"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/mindfunnel/mindfunnel-api/internal/worker"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
		),

		fx.Provide(
			repository.NewQuizAttemptRepository,
			repository.NewPromptRepository,
			repository.NewReportJobRepository,
			repository.NewReportRepository,
		),

		fx.Provide(
			service.NewGeminiGenerator,
			service.NewChromeRenderer,
			client.NewS3Client,
			NewReportWorker,
		),

		fx.Invoke(RunWorker),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start worker")
	}

	<-app.Done()
	log.Info().Msg("Worker shutting down gracefully...")
}

func NewReportWorker(
	cfg *config.Config,
	jobs repository.ReportJobRepository,
	attempts repository.QuizAttemptRepository,
	prompts repository.PromptRepository,
	reports repository.ReportRepository,
	generator service.ReportGenerator,
	renderer service.DocumentRenderer,
	storage client.StorageClient,
) *worker.ReportWorker {
	return worker.NewReportWorker(
		jobs, attempts, prompts, reports,
		generator, renderer, storage,
		cfg.Worker.PollInterval, cfg.Worker.JobTimeout,
	)
}

// RunWorker runs the polling loop for the process lifetime. The loop context
// is cancelled on shutdown, so an in-flight job finishes or times out before
// the process exits.
func RunWorker(lc fx.Lifecycle, w *worker.ReportWorker) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				w.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
