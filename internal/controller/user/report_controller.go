package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// GetReportStatus godoc
// @Summary Poll for a generated report
// @Description Returns 202 with the job status while generation is in flight, 200 with the report once it is ready, and 200 with status error when generation failed terminally (so the client stops polling).
// @Tags Reports
// @Produce json
// @Param attempt_id path string true "Quiz attempt id"
// @Success 200 {object} dto.ReportStatusResponse "Report ready, or generation failed terminally"
// @Success 202 {object} dto.ReportStatusResponse "Generation pending or in progress"
// @Failure 400 {object} dto.ErrorResponse "Malformed attempt id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{attempt_id} [get]
func (c *ReportController) GetReportStatus(ctx *gin.Context) {
	attemptID := ctx.Param("attempt_id")
	if _, err := uuid.Parse(attemptID); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt id format"})
		return
	}

	resp, err := c.reportService.GetReportStatus(attemptID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("GetReportStatus: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check report status"})
		return
	}

	// Terminal outcomes answer with 200 so the client stops polling; anything
	// still in flight answers 202.
	if resp.Ready || resp.Status == dto.ReportStateError {
		ctx.JSON(http.StatusOK, resp)
		return
	}
	ctx.JSON(http.StatusAccepted, resp)
}
