package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReconcileService recovers the attempt identity on the thank-you page. The
// checkout redirect can drop query parameters, so resolution walks three
// sources in order of trust: the attempt_id query param, the provider receipt,
// and finally the browser's last-attempt cookie.
type ReconcileService interface {
	ResolveAttempt(attemptID, receiptID, cookieAttemptID, product string) (*dto.ResolveResponse, error)
}

type reconcileService struct {
	attempts repository.QuizAttemptRepository
	orders   repository.OrderRepository
	provider string
}

func NewReconcileService(attempts repository.QuizAttemptRepository, orders repository.OrderRepository) ReconcileService {
	return &reconcileService{attempts: attempts, orders: orders, provider: "whop"}
}

func (s *reconcileService) ResolveAttempt(attemptID, receiptID, cookieAttemptID, product string) (*dto.ResolveResponse, error) {
	product = model.NormalizeProduct(product)

	if attemptID != "" {
		resp, err := s.resolveDirect(attemptID, receiptID, product, dto.ResolveSourceQuery)
		if err != nil && !errors.Is(err, ErrNoAttemptResolvable) {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	if receiptID != "" {
		order, err := s.orders.FindByProviderOrderID(receiptID)
		if err != nil {
			return nil, fmt.Errorf("order lookup failed: %w", err)
		}
		if order != nil {
			return &dto.ResolveResponse{
				AttemptID: order.QuizAttemptID,
				Product:   order.Product,
				Source:    dto.ResolveSourceOrder,
			}, nil
		}
	}

	if cookieAttemptID != "" {
		resp, err := s.resolveDirect(cookieAttemptID, receiptID, product, dto.ResolveSourceCookie)
		if err != nil && !errors.Is(err, ErrNoAttemptResolvable) {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	log.Warn().
		Str("attemptID", attemptID).
		Str("receiptID", receiptID).
		Str("cookieAttemptID", cookieAttemptID).
		Msg("Thank-you page could not be reconciled to any attempt")
	return nil, ErrNoAttemptResolvable
}

// resolveDirect validates a candidate attempt id and, when the caller also
// carries a receipt the webhook never delivered, records the missing order so
// revenue and payout attribution survive a lost webhook.
func (s *reconcileService) resolveDirect(candidateID, receiptID, product, source string) (*dto.ResolveResponse, error) {
	if _, err := uuid.Parse(candidateID); err != nil {
		log.Warn().Str("attemptID", candidateID).Str("source", source).Msg("Discarding malformed attempt id")
		return nil, ErrNoAttemptResolvable
	}
	attempt, err := s.attempts.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAttemptResolvable
		}
		return nil, fmt.Errorf("attempt lookup failed: %w", err)
	}

	orderCreated := false
	if receiptID != "" {
		created, err := s.ensureOrderForReceipt(attempt, receiptID, product)
		if err != nil {
			return nil, err
		}
		orderCreated = created
	}

	return &dto.ResolveResponse{
		AttemptID:    attempt.ID,
		Product:      product,
		Source:       source,
		OrderCreated: orderCreated,
	}, nil
}

// ensureOrderForReceipt backfills the order row for a receipt the webhook
// missed. It does not enqueue a generation job: the report flow stays
// webhook-driven, this only keeps the books straight.
func (s *reconcileService) ensureOrderForReceipt(attempt *model.QuizAttempt, receiptID, product string) (bool, error) {
	existing, err := s.orders.FindByProviderOrderID(receiptID)
	if err != nil {
		return false, fmt.Errorf("order lookup failed: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	order := &model.Order{
		UserID:          attempt.UserID,
		CategoryID:      attempt.CategoryID,
		AffiliateID:     attempt.AffiliateID,
		QuizAttemptID:   attempt.ID,
		Product:         product,
		Amount:          model.DefaultAmountForProduct(product),
		Provider:        s.provider,
		ProviderOrderID: receiptID,
	}
	if err := s.orders.Create(order); err != nil {
		log.Error().Err(err).Str("receiptID", receiptID).Msg("Backfill order insert failed")
		return false, fmt.Errorf("failed to record order: %w", err)
	}
	if _, err := s.attempts.UpgradeStatus(attempt.ID, model.StatusForProduct(product)); err != nil {
		return false, fmt.Errorf("failed to update attempt status: %w", err)
	}
	log.Info().
		Str("attemptID", attempt.ID).
		Str("receiptID", receiptID).
		Str("product", product).
		Msg("Recorded order missed by webhook delivery")
	return true, nil
}
