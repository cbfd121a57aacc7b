package controllers

import (
	"net/http"

	"citylens-be/models"

	"github.com/gin-gonic/gin"
)

// ReviewWork lets the original reporter approve or reject submitted work.
// POST /api/citizen/review-work
func ReviewWork(c *gin.Context) {
	sessionID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		IssueID       string `json:"issueId" binding:"required"`
		Action        string `json:"action" binding:"required"`
		UserID        string `json:"userId" binding:"required"`
		RejectionNote string `json:"rejectionNote,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: issueId, action, and userId are required"})
		return
	}

	if input.UserID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acting user does not match session"})
		return
	}

	newStatus, err := lifecycleManager.ReviewWork(c.Request.Context(),
		input.IssueID, input.Action, input.UserID, input.RejectionNote)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	message := "Work rejected. Issue sent back for rework."
	if newStatus == models.StatusResolved {
		message = "Work approved successfully. Issue marked as resolved."
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   message,
		"newStatus": newStatus,
	})
}
