package controllers

import (
	"net/http"

	"citylens-be/storage"

	"github.com/gin-gonic/gin"
)

// SubmitWorkProof uploads the completion photo and moves the issue to
// work_submitted through the lifecycle manager.
// POST /api/worker/submit-proof
func SubmitWorkProof(c *gin.Context) {
	sessionID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		IssueID     string `json:"issueId" binding:"required"`
		ImageBase64 string `json:"imageBase64" binding:"required"`
		Note        string `json:"note,omitempty"`
		UserID      string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: issueId, imageBase64, and userId are required"})
		return
	}

	if input.UserID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acting user does not match session"})
		return
	}

	// Validate the transition before touching the blob store so a rejected
	// submission leaves no orphan proof image behind.
	ctx := c.Request.Context()
	if err := lifecycleManager.VerifySubmitWorkProof(ctx, input.IssueID, input.UserID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	result, err := storage.UploadImage(ctx, input.ImageBase64, "citylens/work-proof")
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	if err := lifecycleManager.SubmitWorkProof(ctx, input.IssueID, input.UserID, result.URL, input.Note); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Work proof submitted successfully",
		"imageUrl": result.URL,
	})
}
