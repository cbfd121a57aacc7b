package controllers

import (
	"net/http"

	"citylens-be/models"

	"github.com/gin-gonic/gin"
)

// AssignIssue lets a government user bind a pending issue to a worker.
// POST /api/issues/assign
func AssignIssue(c *gin.Context) {
	sessionID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		IssueID       string `json:"issueId" binding:"required"`
		WorkerID      string `json:"workerId" binding:"required"`
		GovernmentUID string `json:"governmentUid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if input.GovernmentUID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acting user does not match session"})
		return
	}

	if err := lifecycleManager.Assign(c.Request.Context(), input.IssueID, input.WorkerID, input.GovernmentUID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Issue assigned successfully",
	})
}

// UpdateIssueStatus is the generic transition endpoint for
// assigned→in_progress, in_progress→resolved and resolved→closed.
// POST /api/issues/update-status
func UpdateIssueStatus(c *gin.Context) {
	sessionID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		IssueID string `json:"issueId" binding:"required"`
		Status  string `json:"status" binding:"required"`
		UserID  string `json:"userId" binding:"required"`
		Notes   string `json:"notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if input.UserID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acting user does not match session"})
		return
	}

	err := lifecycleManager.UpdateStatus(c.Request.Context(), input.IssueID,
		models.IssueStatus(input.Status), input.UserID, input.Notes)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Issue status updated successfully",
	})
}
