package reconcile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventChannelPaymentReconciled is the pub/sub channel for reconciliation events.
const EventChannelPaymentReconciled = "payments.reconciled"

// PaymentReconciledEvent is published after a reconciliation transaction commits.
type PaymentReconciledEvent struct {
	RunID             string    `json:"run_id"`
	PaymentID         uint      `json:"payment_id"`
	OrderID           uint      `json:"order_id"`
	ExternalReference string    `json:"external_reference"`
	PreviousStatus    string    `json:"previous_status"`
	NewStatus         string    `json:"new_status"`
	ReconciledAt      time.Time `json:"reconciled_at"`
}

// Publisher delivers domain events; fire-and-forget from the caller's view.
type Publisher interface {
	Publish(ctx context.Context, event PaymentReconciledEvent) error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher over Redis pub/sub.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, event PaymentReconciledEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, EventChannelPaymentReconciled, payload).Err()
}
