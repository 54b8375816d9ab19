package transaction

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	transactionExecutorInstance contracts.TransactionExecutor
	onceTransactionExecutor     sync.Once
)

type mongoTransactionExecutor struct {
	client *mongo.Client
}

func NewMongoTransactionExecutor(client *mongo.Client) contracts.TransactionExecutor {
	onceTransactionExecutor.Do(func() {
		transactionExecutorInstance = &mongoTransactionExecutor{client: client}
	})
	return transactionExecutorInstance
}

func (e *mongoTransactionExecutor) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	session, err := e.client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		if _, ok := err.(*exceptions.CustomError); ok {
			return err
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
