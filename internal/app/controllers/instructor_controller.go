package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/middleware"
)

// InstructorController handles instructor profile operations
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// GetInstructorProfile returns an instructor with their rating roll-up
// @Summary Get instructor profile
// @Description Retrieves an instructor together with every offering they taught and the rating roll-up across those offerings
// @Tags instructors
// @Accept json
// @Produce json
// @Param id path int true "Instructor ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.InstructorProfileResponse} "Profile retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructorProfile(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid instructor ID")
		errorDetail = errorDetail.WithDetails("Instructor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.instructorService.GetProfile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
