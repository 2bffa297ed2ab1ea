package rabbitmq

import (
	"context"
	"log"
)

// LogPublisher is used when no broker is configured; events are only logged.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, data any) error {
	log.Printf("event %s (no broker configured): %+v", routingKey, data)
	return nil
}

func (LogPublisher) Close() error { return nil }
