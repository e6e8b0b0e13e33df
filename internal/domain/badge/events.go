package badge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType names an award lifecycle change
type EventType string

const (
	EventAwardRegistered EventType = "award.registered"
	EventAwardMinted     EventType = "award.minted"
	EventAwardFailed     EventType = "award.failed"
)

// Event is published once per applied state change, never for replays.
// The external minting worker consumes award.registered to start a mint.
type Event struct {
	Type           EventType `json:"type"`
	AwardID        uuid.UUID `json:"award_id"`
	UserID         uuid.UUID `json:"user_id"`
	BadgeType      string    `json:"badge_type"`
	WalletAddress  string    `json:"wallet_address"`
	Status         Status    `json:"status"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func newEvent(t EventType, a *Award) Event {
	return Event{
		Type:           t,
		AwardID:        a.ID,
		UserID:         a.UserID,
		BadgeType:      a.BadgeType,
		WalletAddress:  a.WalletAddress,
		Status:         a.Status,
		TransactionRef: a.TxRef(),
		OccurredAt:     a.UpdatedAt,
	}
}

// Publisher delivers award events to interested parties
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes events as JSON on a Redis pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher returns a Redis publisher, or NopPublisher when client is nil.
func NewPublisher(client *redis.Client, channel string) Publisher {
	if client == nil {
		return NopPublisher{}
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
