package controllers

import (
	"errors"
	"net/http"

	"citylens-be/classifier"
	"citylens-be/events"
	"citylens-be/lifecycle"
	"citylens-be/storage"

	"github.com/gin-gonic/gin"
)

// Collaborators wired from main at startup.
var (
	lifecycleManager *lifecycle.Manager
	visionClient     classifier.Client
	eventStream      *events.RedisPublisher
)

func SetLifecycleManager(m *lifecycle.Manager) { lifecycleManager = m }

func SetClassifier(c classifier.Client) { visionClient = c }

func SetEventStream(p *events.RedisPublisher) { eventStream = p }

// sessionUserID returns the authenticated user id set by the auth middleware.
func sessionUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// respondLifecycleError maps the lifecycle error taxonomy onto HTTP codes.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidState),
		errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrMissingProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	case errors.Is(err, storage.ErrUploadFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
	case errors.Is(err, classifier.ErrAnalysisFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
