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

type reconcileFixture struct {
	db       *gorm.DB
	attempts repository.QuizAttemptRepository
	orders   repository.OrderRepository
	svc      ReconcileService
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &reconcileFixture{
		db:       db,
		attempts: repository.NewQuizAttemptRepository(db),
		orders:   repository.NewOrderRepository(db),
	}
	f.svc = NewReconcileService(f.attempts, f.orders)
	return f
}

func (f *reconcileFixture) seedAttempt(t *testing.T) *model.QuizAttempt {
	t.Helper()
	attempt := &model.QuizAttempt{
		UserID:        "11111111-1111-1111-1111-111111111111",
		CategoryID:    "22222222-2222-2222-2222-222222222222",
		QuestionSetID: "33333333-3333-3333-3333-333333333333",
		Archetype:     "calm_strategist",
		Status:        model.AttemptStatusTeaserShown,
	}
	require.NoError(t, f.attempts.Create(attempt))
	return attempt
}

func TestResolveAttemptFromQueryParam(t *testing.T) {
	f := newReconcileFixture(t)
	attempt := f.seedAttempt(t)

	resp, err := f.svc.ResolveAttempt(attempt.ID, "", "", model.ProductMiniReport)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resp.AttemptID)
	assert.Equal(t, dto.ResolveSourceQuery, resp.Source)
	assert.False(t, resp.OrderCreated)
}

func TestResolveAttemptFromOrderReceipt(t *testing.T) {
	f := newReconcileFixture(t)
	attempt := f.seedAttempt(t)
	require.NoError(t, f.orders.Create(&model.Order{
		UserID:          attempt.UserID,
		CategoryID:      attempt.CategoryID,
		QuizAttemptID:   attempt.ID,
		Product:         model.ProductFullAssessment,
		Amount:          model.DefaultFullAmountCents,
		Provider:        "whop",
		ProviderOrderID: "rec_known",
	}))

	// No query param, no cookie: only the receipt identifies the attempt.
	resp, err := f.svc.ResolveAttempt("", "rec_known", "", "")
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resp.AttemptID)
	assert.Equal(t, dto.ResolveSourceOrder, resp.Source)
	assert.Equal(t, model.ProductFullAssessment, resp.Product)
	assert.False(t, resp.OrderCreated)
}

func TestResolveAttemptFromCookie(t *testing.T) {
	f := newReconcileFixture(t)
	attempt := f.seedAttempt(t)

	resp, err := f.svc.ResolveAttempt("", "", attempt.ID, model.ProductMiniReport)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resp.AttemptID)
	assert.Equal(t, dto.ResolveSourceCookie, resp.Source)
}

func TestResolveAttemptBackfillsMissedOrder(t *testing.T) {
	f := newReconcileFixture(t)
	attempt := f.seedAttempt(t)

	resp, err := f.svc.ResolveAttempt(attempt.ID, "rec_missed", "", model.ProductFullAssessment)
	require.NoError(t, err)
	assert.True(t, resp.OrderCreated)

	order, err := f.orders.FindByProviderOrderID("rec_missed")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, attempt.ID, order.QuizAttemptID)
	assert.Equal(t, model.DefaultFullAmountCents, order.Amount)
	assert.Equal(t, "pending", order.PayoutStatus)

	updated, err := f.attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusFullPaid, updated.Status)

	// Second visit to the thank-you page must not duplicate the order.
	resp, err = f.svc.ResolveAttempt(attempt.ID, "rec_missed", "", model.ProductFullAssessment)
	require.NoError(t, err)
	assert.False(t, resp.OrderCreated)

	var orderCount int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestResolveAttemptMalformedIDFallsThrough(t *testing.T) {
	f := newReconcileFixture(t)
	attempt := f.seedAttempt(t)

	// Garbage query param, valid cookie.
	resp, err := f.svc.ResolveAttempt("not-a-uuid", "", attempt.ID, model.ProductMiniReport)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resp.AttemptID)
	assert.Equal(t, dto.ResolveSourceCookie, resp.Source)
}

func TestResolveAttemptNothingResolvable(t *testing.T) {
	f := newReconcileFixture(t)

	_, err := f.svc.ResolveAttempt("", "rec_unknown", "", "")
	assert.ErrorIs(t, err, ErrNoAttemptResolvable)

	_, err = f.svc.ResolveAttempt("", "", "", "")
	assert.ErrorIs(t, err, ErrNoAttemptResolvable)
}
