package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ReaperStop if set will be called during Shutdown to stop the stale reservation reaper
	ReaperStop func()
	// PaymentWorkerStop if set will be called during Shutdown to stop the payment event consumer
	PaymentWorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ReaperStop != nil {
		b.ReaperStop()
		log.Println("Successfully stopped stale reservation reaper")
	}

	if b.PaymentWorkerStop != nil {
		b.PaymentWorkerStop()
		log.Println("Successfully stopped payment event worker")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	err = b.MongoDB.Disconnect(ctx)
	if err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	err = b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
