package webhook

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
)

type PaymentWebhookController struct {
	webhookService service.WebhookService
}

func NewPaymentWebhookController(webhookService service.WebhookService) *PaymentWebhookController {
	return &PaymentWebhookController{webhookService: webhookService}
}

// HandlePaymentEvent godoc
// @Summary Payment provider webhook
// @Description Ingests completed-purchase events: records the order, upgrades the attempt's paid tier and enqueues a report generation job. Duplicate deliveries are acknowledged without side effects. Malformed bodies answer 400 so the provider surfaces the failure instead of silently dropping a payment.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param event body dto.PaymentEvent true "Provider event payload"
// @Success 200 {object} dto.WebhookAck
// @Failure 400 {object} dto.ErrorResponse "Unparseable body or missing identifiers"
// @Failure 404 {object} dto.ErrorResponse "Referenced attempt does not exist"
// @Failure 500 {object} dto.ErrorResponse "Persistence failure, provider should retry"
// @Router /webhooks/payment [post]
func (c *PaymentWebhookController) HandlePaymentEvent(ctx *gin.Context) {
	var event dto.PaymentEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		log.Warn().Err(err).Msg("Payment webhook body did not parse")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid event payload", Details: []string{err.Error()}})
		return
	}

	ack, err := c.webhookService.HandlePaymentEvent(event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnrecognizedEvent), errors.Is(err, service.ErrMissingIdentifiers):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Msg("Payment webhook processing failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process payment event"})
		}
		return
	}
	ctx.JSON(http.StatusOK, ack)
}
