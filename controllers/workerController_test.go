package controllers

import (
	"net/http"
	"testing"

	"citylens-be/models"

	"github.com/stretchr/testify/assert"
)

// The blob store client is never configured in these tests, so any attempt
// to upload before the lifecycle check would panic: a non-2xx response here
// also proves no proof image was stored for the rejected request.

func TestSubmitWorkProofHandlerForeignWorker(t *testing.T) {
	store := setupHandlers(t)
	store.issues["issue-1"].Status = models.StatusInProgress
	store.issues["issue-1"].AssignedTo = "worker-1"
	store.users["worker-2"] = &models.User{Role: models.RoleWorker}

	w, c := postJSON("worker-2", `{"issueId":"issue-1","imageBase64":"AAAA","userId":"worker-2"}`)
	SubmitWorkProof(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitWorkProofHandlerWrongState(t *testing.T) {
	store := setupHandlers(t)
	store.issues["issue-1"].Status = models.StatusAssigned
	store.issues["issue-1"].AssignedTo = "worker-1"

	w, c := postJSON("worker-1", `{"issueId":"issue-1","imageBase64":"AAAA","userId":"worker-1"}`)
	SubmitWorkProof(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitWorkProofHandlerMissingFields(t *testing.T) {
	setupHandlers(t)

	w, c := postJSON("worker-1", `{"issueId":"issue-1"}`)
	SubmitWorkProof(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
