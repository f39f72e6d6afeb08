package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/middleware"
	"github.com/ctecscope/ctecscope/internal/pkg/metrics"
)

// SearchController handles incremental course/instructor lookup
type SearchController struct {
	searchService services.SearchService
	metrics       *metrics.Metrics
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService, m *metrics.Metrics) *SearchController {
	return &SearchController{
		searchService: searchService,
		metrics:       m,
	}
}

// Search returns merged course and instructor suggestions for a query
// @Summary Search courses and instructors
// @Description Matches the query against course codes, course titles and instructor names. Queries shorter than the configured minimum return an empty suggestion list.
// @Tags search
// @Accept json
// @Produce json
// @Param q query string true "Search text" minlength(1)
// @Param limit query int false "Per-entity suggestion limit" default(5) minimum(1) maximum(25)
// @Success 200 {object} dto.APIResponse{data=dto.SearchResponse} "Suggestions retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid query"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	var req dto.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search query")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.searchService.Suggest(ctx, req.Query, req.Limit)
	if err != nil {
		if c.metrics != nil {
			c.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		outcome := "hit"
		if len(results) == 0 {
			outcome = "zero_result"
		}
		c.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromResults(req.Query, results)))
}
