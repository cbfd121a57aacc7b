package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueStatusValid(t *testing.T) {
	for _, status := range []IssueStatus{
		StatusPending, StatusAssigned, StatusInProgress,
		StatusWorkSubmitted, StatusResolved, StatusClosed,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, IssueStatus("OPEN").Valid())
	assert.False(t, IssueStatus("Resolved").Valid())
	assert.False(t, IssueStatus("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCitizen.Valid())
	assert.True(t, RoleWorker.Valid())
	assert.True(t, RoleGovernment.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestPasswordHashing(t *testing.T) {
	user := User{Password: "hunter22"}
	assert.NoError(t, user.HashPassword())
	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, user.ComparePassword("hunter22"))
	assert.False(t, user.ComparePassword("hunter23"))
}
