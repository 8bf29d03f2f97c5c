package rabbitmq

import "context"

// PublisherInterface is what services depend on to emit domain events.
// The AMQP-backed Publisher is the production implementation; tests
// substitute a mock, and a nil publisher disables event emission.
type PublisherInterface interface {
	// Publish sends data as a JSON message under the given routing key.
	Publish(ctx context.Context, routingKey string, data any) error
}

var _ PublisherInterface = (*Publisher)(nil)
