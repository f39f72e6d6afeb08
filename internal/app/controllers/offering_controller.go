package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/middleware"
	"github.com/ctecscope/ctecscope/internal/pkg/metrics"
)

// OfferingController handles filtered offering retrieval and report ingest
type OfferingController struct {
	offeringService services.OfferingService
	ingestService   services.IngestService
	metrics         *metrics.Metrics
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService services.OfferingService, ingestService services.IngestService, m *metrics.Metrics) *OfferingController {
	return &OfferingController{
		offeringService: offeringService,
		ingestService:   ingestService,
		metrics:         m,
	}
}

// ListOfferings returns one page of offerings matching the selection
// @Summary List course offerings
// @Description Retrieves offerings matching the selected courses and instructors, newest term first. Requirement tags refine the page after retrieval. With no course or instructor selected the result is empty without querying the store.
// @Tags offerings
// @Accept json
// @Produce json
// @Param courseId query []string false "Course ids (repeatable)"
// @Param instructorId query []int false "Instructor ids (repeatable)"
// @Param req query []int false "Requirement ids (repeatable, OR-combined)"
// @Param page query int false "1-based page number" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.OfferingListResponse} "Offerings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /offerings [get]
func (c *OfferingController) ListOfferings(ctx *gin.Context) {
	var req dto.OfferingFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	list, err := c.offeringService.List(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		c.metrics.OfferingPagesTotal.Inc()
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetOffering returns one offering with its full survey histograms
// @Summary Get offering details
// @Description Retrieves one offering including its raw per-question response histograms
// @Tags offerings
// @Accept json
// @Produce json
// @Param id path int true "Offering ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OfferingDetailResponse} "Offering retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		errorDetail = errorDetail.WithDetails("Offering ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	detail, err := c.offeringService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// IngestOffering stores one scraped CTEC report
// @Summary Ingest a CTEC report
// @Description Stores one report transactionally. Unknown courses, instructors and requirement tags are created on first sight; re-ingesting the same offering replaces its histograms.
// @Tags offerings
// @Accept json
// @Produce json
// @Param request body dto.IngestOfferingRequest true "Report payload"
// @Success 201 {object} dto.APIResponse{data=dto.IngestOfferingResponse} "Report ingested"
// @Failure 400 {object} dto.ErrorResponse "Invalid report payload"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /offerings [post]
func (c *OfferingController) IngestOffering(ctx *gin.Context) {
	var req dto.IngestOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.ingestService.Ingest(ctx, req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.ReportsIngestedTotal.WithLabelValues("error").Inc()
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		outcome := "replaced"
		if result.Created {
			outcome = "created"
		}
		c.metrics.ReportsIngestedTotal.WithLabelValues(outcome).Inc()
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(result))
}
