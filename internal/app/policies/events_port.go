package policies

import (
	"context"

	"hajez/internal/domain/booking"
)

// EventPublisher delivers booking domain events to the outside world after
// the aggregate has been saved. Implementations must be safe for concurrent
// use; publish failures are logged by callers, never rolled back.
type EventPublisher interface {
	Publish(ctx context.Context, events []booking.Event) error
}
