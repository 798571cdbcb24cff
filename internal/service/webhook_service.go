package service

import (
	"errors"
	"fmt"

	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// WebhookService ingests payment-provider events: it resolves each completed
// purchase to exactly one attempt, records the order idempotently, upgrades
// the attempt's paid tier and enqueues one generation job.
type WebhookService interface {
	HandlePaymentEvent(event dto.PaymentEvent) (*dto.WebhookAck, error)
}

type webhookService struct {
	users    repository.UserRepository
	attempts repository.QuizAttemptRepository
	orders   repository.OrderRepository
	jobs     repository.ReportJobRepository
	provider string
}

func NewWebhookService(
	users repository.UserRepository,
	attempts repository.QuizAttemptRepository,
	orders repository.OrderRepository,
	jobs repository.ReportJobRepository,
) WebhookService {
	return &webhookService{
		users:    users,
		attempts: attempts,
		orders:   orders,
		jobs:     jobs,
		provider: "whop",
	}
}

func (s *webhookService) HandlePaymentEvent(event dto.PaymentEvent) (*dto.WebhookAck, error) {
	kind := event.Kind()
	if kind == "" {
		// No event tag under any known key: this is not a shape we can reason
		// about, so reject it instead of silently dropping a possible payment.
		log.Warn().Msg("Payment event carries no recognizable event tag")
		return nil, ErrUnrecognizedEvent
	}
	if kind != dto.EventOrderCompleted && kind != dto.EventPaymentSucceeded {
		// Acknowledge so the provider does not retry events we ignore.
		log.Info().Str("eventType", kind).Msg("Ignoring non-purchase payment event")
		return &dto.WebhookAck{OK: true}, nil
	}

	providerOrderID := event.Data.ID
	if providerOrderID == "" {
		log.Warn().Str("eventType", kind).Msg("Payment event missing provider order id")
		return nil, ErrMissingIdentifiers
	}

	product := model.NormalizeProduct(event.Data.Metadata.Product)
	attemptID := event.Data.Metadata.QuizAttemptID

	// Metadata can lose the attempt id in transit (provider template bugs).
	// Fall back to the payer's most recent attempt before giving up.
	if attemptID == "" && event.Data.UserEmail != "" {
		log.Info().Str("email", event.Data.UserEmail).Msg("Attempt id missing from metadata, resolving via payer email")
		if resolved, err := s.resolveByEmail(event.Data.UserEmail); err == nil && resolved != "" {
			attemptID = resolved
		} else if err != nil {
			return nil, fmt.Errorf("email fallback lookup failed: %w", err)
		}
	}
	if attemptID == "" {
		log.Warn().Str("providerOrderID", providerOrderID).Msg("Payment event unresolvable: no attempt id and no matching payer")
		return nil, ErrMissingIdentifiers
	}

	// Duplicate-delivery guard comes first: the provider retries deliveries,
	// and a repeated receipt must be a no-op success.
	existing, err := s.orders.FindByProviderOrderID(providerOrderID)
	if err != nil {
		return nil, fmt.Errorf("order lookup failed: %w", err)
	}
	if existing != nil {
		log.Info().Str("providerOrderID", providerOrderID).Msg("Duplicate payment delivery, acknowledging without action")
		// A crash between order insert and job insert on the first delivery
		// would otherwise strand the payment; repair the job on the retry.
		jobID, err := s.ensureJob(existing.QuizAttemptID, existing.Product)
		if err != nil {
			return nil, err
		}
		return &dto.WebhookAck{OK: true, JobID: jobID, Duplicate: true}, nil
	}

	attempt, err := s.attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
		}
		return nil, fmt.Errorf("attempt lookup failed: %w", err)
	}

	amount := event.Amount()
	if amount <= 0 {
		amount = model.DefaultAmountForProduct(product)
	}

	// Side effects in order: order first (idempotency anchor), then the paid
	// tier on the attempt, then the job. Every step before a failure is safe
	// to repeat because the order guard above short-circuits redeliveries.
	order := &model.Order{
		UserID:          attempt.UserID,
		CategoryID:      attempt.CategoryID,
		AffiliateID:     attempt.AffiliateID,
		QuizAttemptID:   attempt.ID,
		Product:         product,
		Amount:          amount,
		Provider:        s.provider,
		ProviderOrderID: providerOrderID,
	}
	if err := s.orders.Create(order); err != nil {
		log.Error().Err(err).Str("providerOrderID", providerOrderID).Msg("Order insert failed")
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	if _, err := s.attempts.UpgradeStatus(attempt.ID, model.StatusForProduct(product)); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("Attempt status upgrade failed")
		return nil, fmt.Errorf("failed to update attempt status: %w", err)
	}

	job := &model.ReportJob{QuizAttemptID: attempt.ID, Product: product, Status: model.JobStatusPending}
	if err := s.jobs.Create(job); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("Job enqueue failed")
		return nil, fmt.Errorf("failed to enqueue generation job: %w", err)
	}

	log.Info().
		Str("attemptID", attempt.ID).
		Str("product", product).
		Str("jobID", job.ID).
		Str("providerOrderID", providerOrderID).
		Msg("Payment recorded and generation job enqueued")
	return &dto.WebhookAck{OK: true, JobID: job.ID}, nil
}

func (s *webhookService) resolveByEmail(email string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	attempt, err := s.attempts.FindLatestByUser(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	log.Info().Str("attemptID", attempt.ID).Str("email", email).Msg("Resolved attempt via email lookup")
	return attempt.ID, nil
}

func (s *webhookService) ensureJob(attemptID, product string) (string, error) {
	job, err := s.jobs.FindByAttemptAndProduct(attemptID, product)
	if err != nil {
		return "", fmt.Errorf("job lookup failed: %w", err)
	}
	if job != nil {
		return job.ID, nil
	}
	job = &model.ReportJob{QuizAttemptID: attemptID, Product: product, Status: model.JobStatusPending}
	if err := s.jobs.Create(job); err != nil {
		return "", fmt.Errorf("failed to enqueue generation job: %w", err)
	}
	log.Warn().Str("attemptID", attemptID).Str("product", product).Msg("Recovered missing job for already-recorded order")
	return job.ID, nil
}
