package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barnhand/stable-api/internal/constants"
)

// Event kinds announced by the workflow.
const (
	EventTaskCreated       = "task.created"
	EventTaskStarted       = "task.started"
	EventTaskSubmitted     = "task.submitted"
	EventTaskApproved      = "task.approved"
	EventTaskRejected      = "task.rejected"
	EventTaskCancelled     = "task.cancelled"
	EventTaskMissed        = "task.missed"
	EventApprovalEscalated = "approval.escalated"
)

// Event describes a state change interested actors should hear about.
type Event struct {
	Kind          string    `json:"kind"`
	TaskID        uint64    `json:"task_id,omitempty"`
	ActorID       uint64    `json:"actor_id,omitempty"`
	RecipientID   uint64    `json:"recipient_id,omitempty"`
	RecipientRole string    `json:"recipient_role,omitempty"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier announces workflow state changes. Delivery failures are logged,
// never surfaced to the request that triggered the event.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// LogNotifier writes events to the server log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(_ context.Context, event Event) {
	log.Printf("notification: kind=%s task=%d recipient=%d role=%q message=%q",
		event.Kind, event.TaskID, event.RecipientID, event.RecipientRole, event.Message)
}

// RedisNotifier pushes events as JSON onto a Redis list for an external
// consumer to deliver.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(addr string) *RedisNotifier {
	return &RedisNotifier{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notification: failed to encode event: %v", err)
		return
	}
	if err := n.client.LPush(ctx, constants.NotificationQueue, payload).Err(); err != nil {
		log.Printf("notification: failed to enqueue event: %v", err)
	}
}
