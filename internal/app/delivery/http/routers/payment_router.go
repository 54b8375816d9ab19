package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	// The gateway signs the request itself; no bearer token is expected.
	router.Post("/webhook", paymentController.HandleWebhook)
}
