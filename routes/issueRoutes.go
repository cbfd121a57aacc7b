package routes

import (
	"citylens-be/controllers"
	"citylens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue CRUD and lifecycle routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues", middlewares.AuthMiddleware())
	{
		issue.POST("/create", middlewares.IssueRateLimiter(5), controllers.CreateIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/recent", controllers.RecentIssues)
		issue.GET("/analytics", controllers.GetIssueAnalytics)
		issue.GET("/:id", controllers.GetIssue)

		issue.POST("/assign", controllers.AssignIssue)
		issue.POST("/update-status", controllers.UpdateIssueStatus)
	}
}
