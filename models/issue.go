package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enum. Lowercase values are the canonical vocabulary and are
// part of the external contract consumed by the dashboards.
type IssueStatus string

const (
	StatusPending       IssueStatus = "pending"
	StatusAssigned      IssueStatus = "assigned"
	StatusInProgress    IssueStatus = "in_progress"
	StatusWorkSubmitted IssueStatus = "work_submitted"
	StatusResolved      IssueStatus = "resolved"
	StatusClosed        IssueStatus = "closed"
)

// Valid reports whether s is one of the six enumerated statuses.
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress,
		StatusWorkSubmitted, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Severity levels produced by the classifier.
const (
	SeverityLow     = "Low"
	SeverityMedium  = "Medium"
	SeverityHigh    = "High"
	SeverityUnknown = "Unknown"
)

// CategoryUncategorized is used when a report carries no classifier output.
const CategoryUncategorized = "Uncategorized"

// GeoPoint is the optional report location.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// WorkProof is the evidence a worker submits for citizen review. On
// rejection the proof is kept for the audit trail and only flagged.
type WorkProof struct {
	ImageURL      string    `bson:"imageUrl" json:"imageUrl"`
	Note          string    `bson:"note" json:"note"`
	SubmittedAt   time.Time `bson:"submittedAt" json:"submittedAt"`
	SubmittedBy   string    `bson:"submittedBy" json:"submittedBy"`
	Rejected      bool      `bson:"rejected,omitempty" json:"rejected,omitempty"`
	RejectionNote string    `bson:"rejectionNote,omitempty" json:"rejectionNote,omitempty"`
}

// CitizenFeedback records the reporter's verdict on submitted work.
type CitizenFeedback struct {
	Action    string    `bson:"action" json:"action"`
	Note      string    `bson:"note" json:"note"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Issue represents an infrastructure defect reported by a citizen and
// tracked through its lifecycle. User references (reportedBy, assignedTo,
// assignedBy, resolvedBy, closedBy) are hex user ids.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Severity    string             `bson:"severity" json:"severity"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location    *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Status      IssueStatus        `bson:"status" json:"status"`

	ReportedBy string `bson:"reportedBy" json:"reportedBy"`
	AssignedTo string `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedBy string `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	ResolvedBy string `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ClosedBy   string `bson:"closedBy,omitempty" json:"closedBy,omitempty"`

	WorkProof       *WorkProof       `bson:"workProof,omitempty" json:"workProof,omitempty"`
	CitizenFeedback *CitizenFeedback `bson:"citizenFeedback,omitempty" json:"citizenFeedback,omitempty"`
	Notes           string           `bson:"notes,omitempty" json:"notes,omitempty"`

	AssignedAt *time.Time `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	StartedAt  *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	ResolvedAt *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ClosedAt   *time.Time `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}
