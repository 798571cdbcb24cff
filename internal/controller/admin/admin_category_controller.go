package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminCategoryController struct {
	adminService service.AdminService
}

func NewAdminCategoryController(adminService service.AdminService) *AdminCategoryController {
	return &AdminCategoryController{adminService: adminService}
}

// CreateCategory godoc
// @Summary (Admin) Provision a quiz category
// @Description Creates a category together with its first question set and AI prompt templates
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Param category body dto.CategoryCreateRequest true "Category, question schema and prompt templates"
// @Success 201 {object} dto.CategoryCreateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/categories [post]
func (c *AdminCategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateCategory: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminService.CreateCategory(req)
	if err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("Admin CreateCategory: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create category", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
