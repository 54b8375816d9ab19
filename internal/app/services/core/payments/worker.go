package payments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Worker drains the payment event queue and applies each event through
// the payment usecase.
type Worker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	eventQueue     contracts.EventQueue
	paymentUsecase contracts.PaymentUsecase
	runCtx         context.Context
	cancel         context.CancelFunc
	done           chan struct{}
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, eventQueue contracts.EventQueue, paymentUsecase contracts.PaymentUsecase) *Worker {
	return &Worker{
		log:            log,
		cfg:            cfg,
		eventQueue:     eventQueue,
		paymentUsecase: paymentUsecase,
		done:           make(chan struct{}),
	}
}

// Start launches the consumer loop in its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	go func() {
		defer close(w.done)
		err := w.eventQueue.Consume(w.runCtx, w.cfg.App.PaymentEventQueue, w.handleMessage)
		if err != nil {
			w.log.Error("payments.worker: consumer stopped with error", zap.Error(err))
		}
	}()
}

// Stop cancels the consumer and waits for it to drain.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
}

func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	event := new(models.PaymentGatewayEvent)
	if err := json.Unmarshal(body, event); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return w.paymentUsecase.ProcessGatewayEvent(ctx, event)
}
