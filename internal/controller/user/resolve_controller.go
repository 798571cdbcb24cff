package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
)

type ResolveController struct {
	reconcileService service.ReconcileService
}

func NewResolveController(reconcileService service.ReconcileService) *ResolveController {
	return &ResolveController{reconcileService: reconcileService}
}

// ResolveAttempt godoc
// @Summary Recover the attempt id on the thank-you page
// @Description Resolves the attempt behind a checkout redirect from the attempt_id query param, the provider receipt, or the browser cookie, in that order. Records the order if the payment webhook never arrived.
// @Tags Reports
// @Produce json
// @Param attempt_id query string false "Attempt id from the redirect URL"
// @Param receipt_id query string false "Provider receipt / order id"
// @Param product query string false "Product tag (mini_report or full_assessment)"
// @Success 200 {object} dto.ResolveResponse
// @Failure 404 {object} dto.ErrorResponse "No attempt resolvable from any source"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/resolve [get]
func (c *ResolveController) ResolveAttempt(ctx *gin.Context) {
	attemptID := ctx.Query("attempt_id")
	receiptID := ctx.Query("receipt_id")
	product := ctx.Query("product")

	cookieAttemptID, err := ctx.Cookie(AttemptCookieName)
	if err != nil {
		cookieAttemptID = ""
	}

	resp, err := c.reconcileService.ResolveAttempt(attemptID, receiptID, cookieAttemptID, product)
	if err != nil {
		if errors.Is(err, service.ErrNoAttemptResolvable) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No attempt could be resolved"})
			return
		}
		log.Error().Err(err).Str("receiptID", receiptID).Msg("ResolveAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to resolve attempt"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
