package lifecycle

import (
	"context"
	"fmt"
	"log"
	"time"

	"citylens-be/events"
	"citylens-be/models"
)

// transitions is the adjacency table for issue statuses. It is the single
// source of truth for reachability; role gates live in the operations below.
var transitions = map[models.IssueStatus][]models.IssueStatus{
	models.StatusPending:       {models.StatusAssigned},
	models.StatusAssigned:      {models.StatusInProgress},
	models.StatusInProgress:    {models.StatusWorkSubmitted, models.StatusResolved},
	models.StatusWorkSubmitted: {models.StatusResolved, models.StatusInProgress},
	models.StatusResolved:      {models.StatusClosed},
	models.StatusClosed:        {},
}

func canTransition(from, to models.IssueStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Manager validates and executes every issue state transition. Each
// operation performs one read and one field-level write against the store;
// concurrent writers follow the store's last-write-wins semantics.
type Manager struct {
	store Store
	pub   events.Publisher
	now   func() time.Time
}

func NewManager(store Store, pub events.Publisher) *Manager {
	return &Manager{store: store, pub: pub, now: time.Now}
}

// Assign moves a pending issue to assigned, binding it to a worker. Only
// government users may assign, and the target must hold the worker role.
func (m *Manager) Assign(ctx context.Context, issueID, workerID, governmentID string) error {
	gov, err := m.store.GetUser(ctx, governmentID)
	if err != nil {
		return err
	}
	if gov.Role != models.RoleGovernment {
		return fmt.Errorf("%w: only government can assign issues", ErrForbidden)
	}

	worker, err := m.store.GetUser(ctx, workerID)
	if err != nil {
		return err
	}
	if worker.Role != models.RoleWorker {
		return fmt.Errorf("%w: assignee is not a worker", ErrForbidden)
	}

	issue, err := m.store.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}
	if issue.Status != models.StatusPending {
		return fmt.Errorf("%w: issue is %s, only pending issues can be assigned", ErrInvalidState, issue.Status)
	}

	now := m.now()
	err = m.store.UpdateIssue(ctx, issueID, map[string]interface{}{
		"assignedTo": workerID,
		"assignedBy": governmentID,
		"status":     models.StatusAssigned,
		"assignedAt": now,
		"updatedAt":  now,
	})
	if err != nil {
		return err
	}

	m.publish(ctx, events.TypeAssigned, issueID, models.StatusAssigned, governmentID)
	return nil
}

// UpdateStatus is the generic transition entry point. It covers
// assigned→in_progress, the legacy direct in_progress→resolved path, and
// resolved→closed. Assignment and proof submission have dedicated
// operations and are rejected here.
func (m *Manager) UpdateStatus(ctx context.Context, issueID string, target models.IssueStatus, actorID, notes string) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	actor, err := m.store.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	issue, err := m.store.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}
	if !canTransition(issue.Status, target) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, issue.Status, target)
	}

	now := m.now()
	fields := map[string]interface{}{
		"status":    target,
		"updatedAt": now,
	}
	if notes != "" {
		fields["notes"] = notes
	}

	switch target {
	case models.StatusInProgress:
		if actor.Role != models.RoleWorker {
			return fmt.Errorf("%w: only workers can update work status", ErrForbidden)
		}
		if issue.AssignedTo != actorID {
			return fmt.Errorf("%w: worker can only update their assigned issues", ErrForbidden)
		}
		fields["startedAt"] = now
	case models.StatusResolved:
		if actor.Role != models.RoleWorker {
			return fmt.Errorf("%w: only workers can update work status", ErrForbidden)
		}
		if issue.AssignedTo != actorID {
			return fmt.Errorf("%w: worker can only update their assigned issues", ErrForbidden)
		}
		fields["resolvedAt"] = now
	case models.StatusClosed:
		if actor.Role != models.RoleGovernment {
			return fmt.Errorf("%w: only government can close issues", ErrForbidden)
		}
		fields["closedAt"] = now
		fields["closedBy"] = actorID
	default:
		// assigned and work_submitted go through Assign / SubmitWorkProof.
		return fmt.Errorf("%w: status %s requires its dedicated operation", ErrInvalidTransition, target)
	}

	if err := m.store.UpdateIssue(ctx, issueID, fields); err != nil {
		return err
	}

	m.publish(ctx, events.TypeStatusChanged, issueID, target, actorID)
	return nil
}

// VerifySubmitWorkProof checks the submit-proof preconditions without
// writing anything. Handlers call it before uploading the proof image so a
// doomed submission never stores a blob.
func (m *Manager) VerifySubmitWorkProof(ctx context.Context, issueID, workerID string) error {
	return m.checkSubmitWorkProof(ctx, issueID, workerID)
}

// checkSubmitWorkProof runs the assignment check first so a foreign worker
// gets Forbidden regardless of the issue's current status.
func (m *Manager) checkSubmitWorkProof(ctx context.Context, issueID, workerID string) error {
	issue, err := m.store.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}
	if issue.AssignedTo != workerID {
		return fmt.Errorf("%w: you are not assigned to this issue", ErrForbidden)
	}
	if issue.Status != models.StatusInProgress {
		return fmt.Errorf("%w: issue must be in_progress to submit proof, got %s", ErrInvalidState, issue.Status)
	}

	worker, err := m.store.GetUser(ctx, workerID)
	if err != nil {
		return err
	}
	if worker.Role != models.RoleWorker {
		return fmt.Errorf("%w: only workers can submit proof of work", ErrForbidden)
	}
	return nil
}

// SubmitWorkProof attaches completion evidence and moves the issue to
// work_submitted.
func (m *Manager) SubmitWorkProof(ctx context.Context, issueID, workerID, imageURL, note string) error {
	if err := m.checkSubmitWorkProof(ctx, issueID, workerID); err != nil {
		return err
	}

	now := m.now()
	err := m.store.UpdateIssue(ctx, issueID, map[string]interface{}{
		"workProof": models.WorkProof{
			ImageURL:    imageURL,
			Note:        note,
			SubmittedAt: now,
			SubmittedBy: workerID,
		},
		"status":    models.StatusWorkSubmitted,
		"updatedAt": now,
	})
	if err != nil {
		return err
	}

	m.publish(ctx, events.TypeWorkSubmitted, issueID, models.StatusWorkSubmitted, workerID)
	return nil
}

// Review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ReviewWork lets the original reporter approve or reject submitted work.
// Approval resolves the issue; rejection sends it back to in_progress while
// keeping the proof, flagged rejected, for the audit trail. Returns the new
// status.
func (m *Manager) ReviewWork(ctx context.Context, issueID, action, citizenID, rejectionNote string) (models.IssueStatus, error) {
	if action != ActionApprove && action != ActionReject {
		return "", fmt.Errorf("%w: action must be %q or %q", ErrInvalidTransition, ActionApprove, ActionReject)
	}

	issue, err := m.store.GetIssue(ctx, issueID)
	if err != nil {
		return "", err
	}
	if issue.ReportedBy != citizenID {
		return "", fmt.Errorf("%w: only the original reporter can approve or reject work", ErrForbidden)
	}
	if issue.Status != models.StatusWorkSubmitted {
		return "", fmt.Errorf("%w: issue must be work_submitted for citizen review, got %s", ErrInvalidState, issue.Status)
	}

	citizen, err := m.store.GetUser(ctx, citizenID)
	if err != nil {
		return "", err
	}
	if citizen.Role != models.RoleCitizen {
		return "", fmt.Errorf("%w: only citizens can review work", ErrForbidden)
	}

	if issue.WorkProof == nil || issue.WorkProof.ImageURL == "" {
		return "", ErrMissingProof
	}

	now := m.now()
	if action == ActionApprove {
		err = m.store.UpdateIssue(ctx, issueID, map[string]interface{}{
			"status":     models.StatusResolved,
			"resolvedAt": now,
			"resolvedBy": citizenID,
			"updatedAt":  now,
		})
		if err != nil {
			return "", err
		}
		m.publish(ctx, events.TypeWorkApproved, issueID, models.StatusResolved, citizenID)
		return models.StatusResolved, nil
	}

	note := rejectionNote
	if note == "" {
		note = "Citizen requested rework"
	}
	err = m.store.UpdateIssue(ctx, issueID, map[string]interface{}{
		"status": models.StatusInProgress,
		"citizenFeedback": models.CitizenFeedback{
			Action:    "rejected",
			Note:      note,
			Timestamp: now,
		},
		"workProof.rejected":      true,
		"workProof.rejectionNote": rejectionNote,
		"updatedAt":               now,
	})
	if err != nil {
		return "", err
	}
	m.publish(ctx, events.TypeWorkRejected, issueID, models.StatusInProgress, citizenID)
	return models.StatusInProgress, nil
}

// publish is best-effort: a failed event never fails the operation.
func (m *Manager) publish(ctx context.Context, evType, issueID string, status models.IssueStatus, actor string) {
	if m.pub == nil {
		return
	}
	ev := events.IssueEvent{
		Type:      evType,
		IssueID:   issueID,
		Status:    status,
		Actor:     actor,
		Timestamp: m.now(),
	}
	if err := m.pub.Publish(ctx, ev); err != nil {
		log.Printf("failed to publish %s event for issue %s: %v", evType, issueID, err)
	}
}
