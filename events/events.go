package events

import (
	"context"
	"encoding/json"
	"time"

	"citylens-be/models"

	"github.com/redis/go-redis/v9"
)

// Channel carries one JSON IssueEvent per successful lifecycle transition.
const Channel = "citylens:issue-events"

// Event types.
const (
	TypeAssigned      = "issue.assigned"
	TypeStatusChanged = "issue.status_changed"
	TypeWorkSubmitted = "issue.work_submitted"
	TypeWorkApproved  = "issue.work_approved"
	TypeWorkRejected  = "issue.work_rejected"
)

// IssueEvent is the payload pushed to dashboard subscribers after a write.
type IssueEvent struct {
	Type      string             `json:"type"`
	IssueID   string             `json:"issueId"`
	Status    models.IssueStatus `json:"status"`
	Actor     string             `json:"actor"`
	Timestamp time.Time          `json:"timestamp"`
}

// Publisher decouples the lifecycle manager from the event transport.
type Publisher interface {
	Publish(ctx context.Context, ev IssueEvent) error
}

// RedisPublisher broadcasts events over a Redis channel. Dashboards attach
// through the websocket bridge, which subscribes to the same channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev IssueEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, Channel, payload).Err()
}

// Subscribe opens a subscription on the issue-event channel. The caller owns
// the returned PubSub and must Close it.
func (p *RedisPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, Channel)
}
