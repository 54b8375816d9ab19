package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Post("/", appointmentController.CreateAppointment)
	router.With(middlewares.Authenticate).Post("/pay-later", appointmentController.CreateAppointmentPayLater)
	router.With(middlewares.Authenticate, middlewares.InitiatePaymentRateLimit()).Post("/{appointmentID}/initiate-payment", appointmentController.InitiatePayment)
	router.With(middlewares.Authenticate).Patch("/status/{appointmentID}", appointmentController.UpdateStatus)
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindAll)
}
