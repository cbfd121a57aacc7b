package controllers

import (
	"context"
	"net/http"
	"time"

	"citylens-be/config"
	"citylens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ListWorkers returns the worker roster the government dashboard assigns
// from.
// GET /api/users/workers
func ListWorkers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection("users").Find(ctx, bson.M{"role": models.RoleWorker})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workers"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode workers"})
		return
	}

	workers := make([]gin.H, 0, len(users))
	for _, user := range users {
		workers = append(workers, gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
		})
	}

	c.JSON(http.StatusOK, workers)
}
