package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"citylens-be/config"
	"citylens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIssue handles a citizen filing a new report. Status always starts at
// pending; classifier output (category/severity/title) arrives pre-filled
// from the /analyze step when the photo contained a defect.
func CreateIssue(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string           `json:"title" binding:"required,max=200"`
		Description string           `json:"description" binding:"required,max=1000"`
		Category    string           `json:"category,omitempty"`
		Severity    string           `json:"severity,omitempty"`
		ImageURL    string           `json:"imageUrl,omitempty"`
		Location    *models.GeoPoint `json:"location,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := input.Category
	if category == "" {
		category = models.CategoryUncategorized
	}
	severity := input.Severity
	if severity == "" {
		severity = models.SeverityUnknown
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Severity:    severity,
		ImageURL:    input.ImageURL,
		Location:    input.Location,
		Status:      models.StatusPending,
		ReportedBy:  userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection("issues").InsertOne(ctx, issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles retrieving issues with filtering, pagination, and
// sorting. Dashboards filter by status, category, assignedTo or reportedBy.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Query("category")
	status := c.Query("status")
	assignedTo := c.Query("assignedTo")
	reportedBy := c.Query("reportedBy")
	search := c.Query("search")
	sortParam := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if category != "" && category != "all" {
		filter["category"] = category
	}
	if status != "" && status != "all" {
		if !models.IssueStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter["status"] = status
	}
	if assignedTo != "" {
		filter["assignedTo"] = assignedTo
	}
	if reportedBy != "" {
		filter["reportedBy"] = reportedBy
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	skip := (page - 1) * limit

	var sortOptions bson.D
	switch sortParam {
	case "oldest":
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	case "newest":
		fallthrough
	default:
		sortOptions = bson.D{{Key: "createdAt", Value: -1}}
	}

	issueCollection := config.GetCollection("issues")

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	findOptions := options.Find().
		SetSort(sortOptions).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID, with reporter and assignee details
// attached for the detail view.
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issue":      issue,
		"reportedBy": userSummary(ctx, issue.ReportedBy),
		"assignedTo": userSummary(ctx, issue.AssignedTo),
	})
}

// userSummary resolves a user id to the public fields dashboards show next
// to an issue. Returns nil for empty or unresolvable ids.
func userSummary(ctx context.Context, userID string) map[string]interface{} {
	if userID == "" {
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		return map[string]interface{}{"id": userID}
	}
	return map[string]interface{}{
		"id":    userID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// GetIssueAnalytics returns the aggregates behind the government dashboard.
func GetIssueAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")

	categoryPipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":   "$category",
				"count": bson.M{"$sum": 1},
			},
		},
		{
			"$project": bson.M{
				"name":  "$_id",
				"value": "$count",
				"_id":   0,
			},
		},
	}

	categoryCursor, err := issueCollection.Aggregate(ctx, categoryPipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get category analytics"})
		return
	}
	defer categoryCursor.Close(ctx)

	var issuesByCategory []bson.M
	if err := categoryCursor.All(ctx, &issuesByCategory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode category analytics"})
		return
	}

	// Per-status counts drive the kanban headers
	issuesByStatus := gin.H{}
	for _, status := range []models.IssueStatus{
		models.StatusPending, models.StatusAssigned, models.StatusInProgress,
		models.StatusWorkSubmitted, models.StatusResolved, models.StatusClosed,
	} {
		count, err := issueCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			count = 0
		}
		issuesByStatus[string(status)] = count
	}

	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		nextDate := date.AddDate(0, 0, 1)

		count, err := issueCollection.CountDocuments(ctx, bson.M{
			"createdAt": bson.M{
				"$gte": date,
				"$lt":  nextDate,
			},
		})
		if err != nil {
			count = 0
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	totalIssues, err := issueCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		totalIssues = 0
	}

	openIssues, err := issueCollection.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []models.IssueStatus{
			models.StatusPending, models.StatusAssigned,
			models.StatusInProgress, models.StatusWorkSubmitted,
		}},
	})
	if err != nil {
		openIssues = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory": issuesByCategory,
		"issuesByStatus":   issuesByStatus,
		"last7Days":        last7Days,
		"totalIssues":      totalIssues,
		"openIssues":       openIssues,
	})
}

// RecentIssues returns the most recent geolocated issues for the map view
func RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 19

	filter := bson.M{
		"location": bson.M{"$exists": true, "$ne": nil},
	}

	projection := bson.M{
		"_id":       1,
		"title":     1,
		"location":  1,
		"category":  1,
		"status":    1,
		"createdAt": 1,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cursor, err := config.GetCollection("issues").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent issues"})
		return
	}

	type pin struct {
		ID        string             `json:"id"`
		Title     string             `json:"title"`
		Lat       float64            `json:"lat"`
		Lng       float64            `json:"lng"`
		Category  string             `json:"category,omitempty"`
		Status    models.IssueStatus `json:"status"`
		CreatedAt time.Time          `json:"createdAt,omitempty"`
	}

	var response []pin
	for _, issue := range issues {
		if issue.Location == nil {
			continue
		}
		response = append(response, pin{
			ID:        issue.ID.Hex(),
			Title:     issue.Title,
			Lat:       issue.Location.Lat,
			Lng:       issue.Location.Lng,
			Category:  issue.Category,
			Status:    issue.Status,
			CreatedAt: issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
