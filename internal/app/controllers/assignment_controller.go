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

// AssignmentController handles assignment CRUD operations
type AssignmentController struct {
	assignmentService services.AssignmentService
	metrics           metrics.Client
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, metricsClient metrics.Client, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		metrics:           metricsClient,
		logger:            logger,
	}
}

// Create stores a new assignment owned by the caller. The body is decoded
// by the field validator rather than bound, so unknown fields and type
// confusion are rejected instead of silently dropped.
func (c *AssignmentController) Create(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterCreateAssignment)

	raw, err := ctx.GetRawData()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read assignment body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidFields, "Please provide correct parameters")))
		return
	}

	resp, err := c.assignmentService.Create(ctx, ctx.GetHeader("Authorization"), raw)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Assignment created successfully"))
}

// GetByID returns a single assignment
func (c *AssignmentController) GetByID(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterGetAssignment)

	resp, err := c.assignmentService.GetByID(ctx, ctx.GetHeader("Authorization"), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Assignment retrieved successfully"))
}

// GetAll lists every assignment. No credential is required.
func (c *AssignmentController) GetAll(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterListAssignments)

	resp, err := c.assignmentService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Assignments retrieved successfully"))
}

// Update rewrites an assignment's mutable fields
func (c *AssignmentController) Update(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterUpdateAssignment)

	raw, err := ctx.GetRawData()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read assignment body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidFields, "Please provide correct parameters")))
		return
	}

	if err := c.assignmentService.Update(ctx, ctx.GetHeader("Authorization"), ctx.Param("id"), raw); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Delete removes an assignment
func (c *AssignmentController) Delete(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterDeleteAssignment)

	if err := c.assignmentService.Delete(ctx, ctx.GetHeader("Authorization"), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
