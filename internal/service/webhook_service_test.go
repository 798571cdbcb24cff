package service

import (
	"testing"

	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type webhookFixture struct {
	db       *gorm.DB
	users    repository.UserRepository
	attempts repository.QuizAttemptRepository
	orders   repository.OrderRepository
	jobs     repository.ReportJobRepository
	svc      WebhookService
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &webhookFixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		attempts: repository.NewQuizAttemptRepository(db),
		orders:   repository.NewOrderRepository(db),
		jobs:     repository.NewReportJobRepository(db),
	}
	f.svc = NewWebhookService(f.users, f.attempts, f.orders, f.jobs)
	return f
}

func (f *webhookFixture) seedAttempt(t *testing.T, email string) *model.QuizAttempt {
	t.Helper()
	user, err := f.users.UpsertByEmail(email)
	require.NoError(t, err)
	attempt := &model.QuizAttempt{
		UserID:        user.ID,
		CategoryID:    "22222222-2222-2222-2222-222222222222",
		QuestionSetID: "33333333-3333-3333-3333-333333333333",
		Archetype:     "calm_strategist",
		Status:        model.AttemptStatusTeaserShown,
	}
	require.NoError(t, f.attempts.Create(attempt))
	return attempt
}

func purchaseEvent(attemptID, orderID, product string) dto.PaymentEvent {
	return dto.PaymentEvent{
		Type: dto.EventOrderCompleted,
		Data: dto.PaymentEventData{
			ID:          orderID,
			AmountCents: 700,
			Metadata:    dto.PaymentMetadata{QuizAttemptID: attemptID, Product: product},
		},
	}
}

func TestHandlePaymentEventRecordsOrderAndEnqueuesJob(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "buyer@example.com")

	ack, err := f.svc.HandlePaymentEvent(purchaseEvent(attempt.ID, "rec_1", model.ProductMiniReport))
	require.NoError(t, err)
	assert.True(t, ack.OK)
	assert.NotEmpty(t, ack.JobID)
	assert.False(t, ack.Duplicate)

	order, err := f.orders.FindByProviderOrderID("rec_1")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, attempt.ID, order.QuizAttemptID)
	assert.Equal(t, 700, order.Amount)
	assert.Equal(t, "whop", order.Provider)

	updated, err := f.attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusMiniPaid, updated.Status)

	job, err := f.jobs.FindByID(ack.JobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, model.ProductMiniReport, job.Product)
}

func TestHandlePaymentEventDuplicateDeliveryIsNoOp(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "buyer@example.com")
	event := purchaseEvent(attempt.ID, "rec_dup", model.ProductMiniReport)

	first, err := f.svc.HandlePaymentEvent(event)
	require.NoError(t, err)

	second, err := f.svc.HandlePaymentEvent(event)
	require.NoError(t, err)
	assert.True(t, second.OK)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.JobID, second.JobID, "redelivery must reference the original job")

	var jobCount int64
	require.NoError(t, f.db.Model(&model.ReportJob{}).Count(&jobCount).Error)
	assert.EqualValues(t, 1, jobCount, "redelivery must not enqueue a second job")

	var orderCount int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestHandlePaymentEventDuplicateRepairsMissingJob(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "buyer@example.com")

	// First delivery crashed between the order insert and the job insert.
	require.NoError(t, f.orders.Create(&model.Order{
		UserID:          attempt.UserID,
		CategoryID:      attempt.CategoryID,
		QuizAttemptID:   attempt.ID,
		Product:         model.ProductMiniReport,
		Amount:          700,
		Provider:        "whop",
		ProviderOrderID: "rec_crash",
	}))

	ack, err := f.svc.HandlePaymentEvent(purchaseEvent(attempt.ID, "rec_crash", model.ProductMiniReport))
	require.NoError(t, err)
	assert.True(t, ack.Duplicate)
	require.NotEmpty(t, ack.JobID)

	job, err := f.jobs.FindByID(ack.JobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, job.Status)
}

func TestHandlePaymentEventStatusNeverDowngrades(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "buyer@example.com")

	_, err := f.svc.HandlePaymentEvent(purchaseEvent(attempt.ID, "rec_full", model.ProductFullAssessment))
	require.NoError(t, err)

	_, err = f.svc.HandlePaymentEvent(purchaseEvent(attempt.ID, "rec_mini", model.ProductMiniReport))
	require.NoError(t, err)

	updated, err := f.attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusFullPaid, updated.Status, "a later mini purchase must not downgrade full_paid")
}

func TestHandlePaymentEventEmailFallback(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "fallback@example.com")

	event := dto.PaymentEvent{
		Event: dto.EventPaymentSucceeded,
		Data: dto.PaymentEventData{
			ID:        "rec_email",
			UserEmail: "fallback@example.com",
			Metadata:  dto.PaymentMetadata{Product: model.ProductMiniReport},
		},
	}
	ack, err := f.svc.HandlePaymentEvent(event)
	require.NoError(t, err)
	assert.True(t, ack.OK)

	order, err := f.orders.FindByProviderOrderID("rec_email")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, attempt.ID, order.QuizAttemptID)
}

func TestHandlePaymentEventMissingIdentifiers(t *testing.T) {
	f := newWebhookFixture(t)

	// No attempt id, and the payer email matches nobody.
	event := dto.PaymentEvent{
		Type: dto.EventOrderCompleted,
		Data: dto.PaymentEventData{ID: "rec_orphan", UserEmail: "stranger@example.com"},
	}
	_, err := f.svc.HandlePaymentEvent(event)
	assert.ErrorIs(t, err, ErrMissingIdentifiers)

	// No provider order id at all.
	event = dto.PaymentEvent{Type: dto.EventOrderCompleted}
	_, err = f.svc.HandlePaymentEvent(event)
	assert.ErrorIs(t, err, ErrMissingIdentifiers)
}

func TestHandlePaymentEventIgnoresOtherKinds(t *testing.T) {
	f := newWebhookFixture(t)

	ack, err := f.svc.HandlePaymentEvent(dto.PaymentEvent{Type: "refund.created"})
	require.NoError(t, err)
	assert.True(t, ack.OK)
	assert.Empty(t, ack.JobID)

	var orderCount int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestHandlePaymentEventRejectsUntaggedBody(t *testing.T) {
	f := newWebhookFixture(t)

	_, err := f.svc.HandlePaymentEvent(dto.PaymentEvent{
		Data: dto.PaymentEventData{ID: "rec_untagged"},
	})
	assert.ErrorIs(t, err, ErrUnrecognizedEvent)
}

func TestHandlePaymentEventUnknownAttempt(t *testing.T) {
	f := newWebhookFixture(t)

	_, err := f.svc.HandlePaymentEvent(purchaseEvent("99999999-9999-9999-9999-999999999999", "rec_ghost", model.ProductMiniReport))
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestHandlePaymentEventDefaultsAmount(t *testing.T) {
	f := newWebhookFixture(t)
	attempt := f.seedAttempt(t, "buyer@example.com")

	event := purchaseEvent(attempt.ID, "rec_free", model.ProductFullAssessment)
	event.Data.AmountCents = 0
	_, err := f.svc.HandlePaymentEvent(event)
	require.NoError(t, err)

	order, err := f.orders.FindByProviderOrderID("rec_free")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.DefaultFullAmountCents, order.Amount)
}
