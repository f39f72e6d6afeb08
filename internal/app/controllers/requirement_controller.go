package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/middleware"
)

// RequirementController handles requirement taxonomy operations
type RequirementController struct {
	requirementService services.RequirementService
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementService services.RequirementService) *RequirementController {
	return &RequirementController{
		requirementService: requirementService,
	}
}

// ListRequirements returns the full requirement taxonomy
// @Summary List requirement tags
// @Description Retrieves every degree/distribution requirement tag offerings can satisfy
// @Tags requirements
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RequirementListResponse} "Requirements retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /requirements [get]
func (c *RequirementController) ListRequirements(ctx *gin.Context) {
	requirements, err := c.requirementService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requirements))
}
