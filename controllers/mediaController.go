package controllers

import (
	"log"
	"net/http"

	"citylens-be/storage"

	"github.com/gin-gonic/gin"
)

// AnalyzeImage forwards a report photo to the vision model and returns its
// defect classification. Pass-through adapter; no fields are persisted here.
// POST /api/analyze
func AnalyzeImage(c *gin.Context) {
	if visionClient == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GEMINI_API_KEY is not configured"})
		return
	}

	var input struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	result, err := visionClient.Analyze(c.Request.Context(), input.Image)
	if err != nil {
		log.Println("AI Analysis Error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UploadImage stores a base64 image in the blob store and returns its
// public URL.
// POST /api/upload
func UploadImage(c *gin.Context) {
	var input struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	result, err := storage.UploadImage(c.Request.Context(), input.Image, "citylens-issues")
	if err != nil {
		log.Println("Upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
