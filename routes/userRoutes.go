package routes

import (
	"citylens-be/controllers"
	"citylens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the user roster and live-update routes
func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users", middlewares.AuthMiddleware())
	{
		users.GET("/workers", controllers.ListWorkers)
	}

	r.GET("/api/ws/issues", controllers.StreamIssueEvents)
}
