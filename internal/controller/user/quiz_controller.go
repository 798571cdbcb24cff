package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
)

// AttemptCookieName carries the last created attempt id so the thank-you page
// can recover it when the checkout redirect drops every other identifier.
const (
	AttemptCookieName   = "last_attempt_id"
	attemptCookieMaxAge = 7 * 24 * 60 * 60 // seconds
)

type QuizController struct {
	quizService service.QuizSubmissionService
}

func NewQuizController(quizService service.QuizSubmissionService) *QuizController {
	return &QuizController{quizService: quizService}
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores the submitted answers, stores the attempt, and returns the archetype teaser
// @Tags Quiz
// @Accept json
// @Produce json
// @Param category_slug path string true "Category slug"
// @Param submission body dto.QuizSubmitRequest true "Visitor email and answers"
// @Success 201 {object} dto.QuizSubmitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Unknown category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/{category_slug}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	categorySlug := ctx.Param("category_slug")

	var req dto.QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("categorySlug", categorySlug).Msg("SubmitQuiz: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.SubmitQuiz(categorySlug, req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) || errors.Is(err, service.ErrQuestionSetNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("categorySlug", categorySlug).Msg("SubmitQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit quiz"})
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(AttemptCookieName, resp.AttemptID, attemptCookieMaxAge, "/", "", false, true)
	ctx.JSON(http.StatusCreated, resp)
}
