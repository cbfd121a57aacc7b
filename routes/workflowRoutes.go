package routes

import (
	"citylens-be/controllers"
	"citylens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// WorkflowRoutes sets up the work-proof and citizen-review routes
func WorkflowRoutes(r *gin.Engine) {
	worker := r.Group("/api/worker", middlewares.AuthMiddleware())
	{
		worker.POST("/submit-proof", controllers.SubmitWorkProof)
	}

	citizen := r.Group("/api/citizen", middlewares.AuthMiddleware())
	{
		citizen.POST("/review-work", controllers.ReviewWork)
	}
}
