package rabbitmq

import "context"

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close() error
}

var (
	_ PublisherInterface = (*Publisher)(nil)
	_ PublisherInterface = LogPublisher{}
)
