package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/middleware"
	"github.com/ctecscope/ctecscope/internal/pkg/helpers"
)

// CourseController handles catalog course operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses returns one page of the course catalog
// @Summary List catalog courses
// @Description Retrieves a paginated catalog listing, optionally filtered by a case-insensitive match on code or title
// @Tags courses
// @Accept json
// @Produce json
// @Param q query string false "Filter text matched against course code and title"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	listing, err := c.courseService.List(ctx, ctx.Query("q"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listing))
}

// GetCourseByCode returns a course with all its offerings
// @Summary Get course details
// @Description Retrieves a course by catalog code together with every offering of it, newest term first
// @Tags courses
// @Accept json
// @Produce json
// @Param code path string true "Course catalog code" example("CS 111")
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course code"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /courses/{code} [get]
func (c *CourseController) GetCourseByCode(ctx *gin.Context) {
	detail, err := c.courseService.GetByCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}
