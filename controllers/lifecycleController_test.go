package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"citylens-be/lifecycle"
	"citylens-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// memStore is just enough of a lifecycle.Store for handler-level tests.
type memStore struct {
	issues map[string]*models.Issue
	users  map[string]*models.User
}

func (s *memStore) GetIssue(_ context.Context, id string) (*models.Issue, error) {
	if issue, ok := s.issues[id]; ok {
		copied := *issue
		return &copied, nil
	}
	return nil, fmt.Errorf("issue %q: %w", id, lifecycle.ErrNotFound)
}

func (s *memStore) GetUser(_ context.Context, id string) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, fmt.Errorf("user %q: %w", id, lifecycle.ErrNotFound)
}

func (s *memStore) UpdateIssue(_ context.Context, id string, fields map[string]interface{}) error {
	issue, ok := s.issues[id]
	if !ok {
		return fmt.Errorf("issue %q: %w", id, lifecycle.ErrNotFound)
	}
	if status, ok := fields["status"].(models.IssueStatus); ok {
		issue.Status = status
	}
	if assignedTo, ok := fields["assignedTo"].(string); ok {
		issue.AssignedTo = assignedTo
	}
	return nil
}

func setupHandlers(t *testing.T) *memStore {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memStore{
		issues: map[string]*models.Issue{
			"issue-1": {Status: models.StatusPending, ReportedBy: "citizen-1"},
		},
		users: map[string]*models.User{
			"citizen-1": {Role: models.RoleCitizen},
			"worker-1":  {Role: models.RoleWorker},
			"gov-1":     {Role: models.RoleGovernment},
		},
	}
	SetLifecycleManager(lifecycle.NewManager(store, nil))
	return store
}

func postJSON(userID, body string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set("user_id", userID)
	}
	return w, c
}

func TestAssignIssueHandler(t *testing.T) {
	store := setupHandlers(t)

	w, c := postJSON("gov-1", `{"issueId":"issue-1","workerId":"worker-1","governmentUid":"gov-1"}`)
	AssignIssue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, models.StatusAssigned, store.issues["issue-1"].Status)
}

func TestAssignIssueMissingFields(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("gov-1", `{"issueId":"issue-1"}`)
	AssignIssue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignIssueSessionMismatch(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("worker-1", `{"issueId":"issue-1","workerId":"worker-1","governmentUid":"gov-1"}`)
	AssignIssue(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssignIssueNotFound(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("gov-1", `{"issueId":"missing","workerId":"worker-1","governmentUid":"gov-1"}`)
	AssignIssue(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateIssueStatusInvalidTransition(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("worker-1", `{"issueId":"issue-1","status":"in_progress","userId":"worker-1"}`)
	UpdateIssueStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIssueStatusUnauthenticated(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("", `{"issueId":"issue-1","status":"in_progress","userId":"worker-1"}`)
	UpdateIssueStatus(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewWorkHandler(t *testing.T) {
	store := setupHandlers(t)
	store.issues["issue-1"].Status = models.StatusWorkSubmitted
	store.issues["issue-1"].AssignedTo = "worker-1"
	store.issues["issue-1"].WorkProof = &models.WorkProof{ImageURL: "https://blobs.example/p.jpg"}

	w, c := postJSON("citizen-1", `{"issueId":"issue-1","action":"approve","userId":"citizen-1"}`)
	ReviewWork(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"newStatus":"resolved"`)
}

func TestReviewWorkHandlerForbidden(t *testing.T) {
	store := setupHandlers(t)
	store.issues["issue-1"].Status = models.StatusWorkSubmitted
	store.issues["issue-1"].WorkProof = &models.WorkProof{ImageURL: "https://blobs.example/p.jpg"}
	store.users["citizen-2"] = &models.User{Role: models.RoleCitizen}

	w, c := postJSON("citizen-2", `{"issueId":"issue-1","action":"approve","userId":"citizen-2"}`)
	ReviewWork(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
