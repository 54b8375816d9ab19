package queue

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	eventQueueInstance contracts.EventQueue
	onceEventQueue     sync.Once
)

type rabbitMQQueue struct {
	conn *amqp091.Connection
	Log  *zap.Logger
}

func NewRabbitMQQueue(conn *amqp091.Connection, logger *zap.Logger) contracts.EventQueue {
	onceEventQueue.Do(func() {
		eventQueueInstance = &rabbitMQQueue{
			conn: conn,
			Log:  logger,
		}
	})
	return eventQueueInstance
}

func (q *rabbitMQQueue) Publish(ctx context.Context, queueName string, body []byte) error {
	channel, err := q.conn.Channel()
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}
	defer channel.Close()

	if _, err := q.declareDurableQueue(channel, queueName); err != nil {
		return err
	}

	err = channel.PublishWithContext(ctx,
		"",
		queueName,
		false,
		false,
		amqp091.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	q.Log.Info("rabbitMQQueue.Publish message published",
		zap.String(constvars.LoggingQueueKey, queueName),
	)
	return nil
}

// Consume blocks until ctx is canceled or the delivery channel closes.
// The handler decides the outcome per message: nil acks, a permanent
// failure acks (redelivery will not help), anything else nacks with
// requeue.
func (q *rabbitMQQueue) Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error {
	channel, err := q.conn.Channel()
	if err != nil {
		return exceptions.ErrQueueConsume(err)
	}
	defer channel.Close()

	if _, err := q.declareDurableQueue(channel, queueName); err != nil {
		return err
	}

	if err := channel.Qos(1, 0, false); err != nil {
		return exceptions.ErrQueueConsume(err)
	}

	deliveries, err := channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return exceptions.ErrQueueConsume(err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			err := handler(ctx, delivery.Body)
			if err == nil {
				delivery.Ack(false)
				continue
			}
			if isPermanentFailure(err) {
				q.Log.Error("rabbitMQQueue.Consume dropping message after permanent failure",
					zap.String(constvars.LoggingQueueKey, queueName),
					zap.Error(err),
				)
				delivery.Ack(false)
				continue
			}
			q.Log.Error("rabbitMQQueue.Consume requeueing message after transient failure",
				zap.String(constvars.LoggingQueueKey, queueName),
				zap.Error(err),
			)
			delivery.Nack(false, true)
		}
	}
}

// Server-side failures are worth retrying, anything else means the message
// itself can never be applied.
func isPermanentFailure(err error) bool {
	customErr, ok := err.(*exceptions.CustomError)
	if !ok {
		return false
	}
	return customErr.StatusCode < constvars.StatusInternalServerError
}

func (q *rabbitMQQueue) declareDurableQueue(channel *amqp091.Channel, queueName string) (amqp091.Queue, error) {
	declared, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return declared, exceptions.ErrQueuePublish(err)
	}
	return declared, nil
}
