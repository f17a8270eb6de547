package kafka

import (
	"context"
	"encoding/json"
	"time"

	"hajez/internal/domain/booking"
)

// EventPublisher pushes booking domain events to a single topic, keyed by
// aggregate id so per-booking ordering survives partitioning.
type EventPublisher struct {
	producer *Producer
	topic    string
}

func NewEventPublisher(producer *Producer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

type envelope struct {
	Name       string    `json:"name"`
	BookingID  string    `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (p *EventPublisher) Publish(ctx context.Context, events []booking.Event) error {
	for _, e := range events {
		body, err := json.Marshal(envelope{
			Name:       e.EventName(),
			BookingID:  e.AggregateID(),
			OccurredAt: e.OccurredAt().UTC(),
			Payload:    e,
		})
		if err != nil {
			return err
		}
		headers := map[string]string{"event": e.EventName()}
		if err := p.producer.Publish(ctx, p.topic, e.AggregateID(), body, headers); err != nil {
			return err
		}
	}
	return nil
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, events []booking.Event) error { return nil }
