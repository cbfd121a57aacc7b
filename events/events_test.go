package events

import (
	"encoding/json"
	"testing"
	"time"

	"citylens-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Dashboards consume the event payload directly; the JSON keys are part of
// the contract.
func TestIssueEventJSON(t *testing.T) {
	ev := IssueEvent{
		Type:      TypeWorkSubmitted,
		IssueID:   "abc123",
		Status:    models.StatusWorkSubmitted,
		Actor:     "worker-1",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "issue.work_submitted", decoded["type"])
	assert.Equal(t, "abc123", decoded["issueId"])
	assert.Equal(t, "work_submitted", decoded["status"])
	assert.Equal(t, "worker-1", decoded["actor"])
	assert.Contains(t, decoded, "timestamp")
}
