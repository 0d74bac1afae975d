package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/app/services"
	"github.com/assignhub/assignhub/internal/middleware"
	"github.com/assignhub/assignhub/internal/pkg/metrics"
)

// SubmissionController handles submission operations
type SubmissionController struct {
	submissionService services.SubmissionService
	metrics           metrics.Client
	logger            zerolog.Logger
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService, metricsClient metrics.Client, logger zerolog.Logger) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
		metrics:           metricsClient,
		logger:            logger,
	}
}

// Create records a submission for an assignment
func (c *SubmissionController) Create(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterCreateSubmission)

	var req dto.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid submission request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.submissionService.Create(ctx, ctx.GetHeader("Authorization"), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Submission accepted"))
}
