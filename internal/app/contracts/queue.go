package contracts

import "context"

// EventQueue is a durable message queue. Publish must not return until the
// broker has accepted the message.
type EventQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error
}
