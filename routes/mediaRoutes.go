package routes

import (
	"citylens-be/controllers"
	"citylens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// MediaRoutes sets up the image analysis and upload adapters
func MediaRoutes(r *gin.Engine) {
	media := r.Group("/api", middlewares.AuthMiddleware())
	{
		media.POST("/analyze", controllers.AnalyzeImage)
		media.POST("/upload", controllers.UploadImage)
	}
}
