// Package notifier delivers events emitted after successful state-changing
// use cases to asynchronous downstream consumers (mail, webhooks).
package notifier

import (
	"context"
	"log/slog"
)

// EventKind identifies what happened.
type EventKind string

const (
	// EventFinishRequestWithdraw fires after a withdrawal request is accepted.
	EventFinishRequestWithdraw EventKind = "FINISH_REQUEST_WITHDRAW"
)

// Event carries a notification payload for downstream delivery.
type Event struct {
	Kind    EventKind
	Payload any
}

// Publisher accepts events for asynchronous delivery. Delivery failure must
// never roll back the originating transaction, so Publish does not return an
// error.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// LogPublisher records events to the structured log. It stands in for a real
// mail/queue delivery channel.
type LogPublisher struct {
	logger *slog.Logger
}

var _ Publisher = (*LogPublisher)(nil)

// NewLogPublisher returns a Publisher writing to logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.logger.InfoContext(ctx, "Event published",
		slog.String("event_kind", string(event.Kind)),
		slog.Any("payload", event.Payload),
	)
}
