package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assignhub/assignhub/internal/app/controllers"
	"github.com/assignhub/assignhub/internal/app/models/dto"
)

// SetupRouter configures all application routes. storeGuard runs before
// every /v3 handler; the health endpoint does its own store probe.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	assignmentController *controllers.AssignmentController,
	submissionController *controllers.SubmissionController,
	healthController *controllers.HealthController,
	storeGuard gin.HandlerFunc,
) {
	// Unknown methods on known paths answer 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeMethodNotAllowed, "Method not allowed")))
	})

	router.GET("/healthz", healthController.Check)

	v3 := router.Group("/v3")
	v3.Use(storeGuard)

	user := v3.Group("/user")
	{
		user.POST("/login", authController.Login)
	}

	assignments := v3.Group("/assignments")
	{
		assignments.POST("", assignmentController.Create)
		assignments.GET("", assignmentController.GetAll)
		assignments.GET("/:id", assignmentController.GetByID)
		assignments.PUT("/:id", assignmentController.Update)
		assignments.DELETE("/:id", assignmentController.Delete)
		assignments.POST("/:id/submission", submissionController.Create)
	}
}
