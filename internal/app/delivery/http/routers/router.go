package routers

import (
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	scheduleController *controllers.ScheduleController,
	doctorScheduleController *controllers.DoctorScheduleController,
	paymentController *controllers.PaymentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, appointmentController)
			})

			r.Route("/schedules", func(r chi.Router) {
				attachScheduleRoutes(r, middlewares, scheduleController)
			})

			r.Route("/doctor-schedules", func(r chi.Router) {
				attachDoctorScheduleRoutes(r, middlewares, doctorScheduleController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, middlewares, paymentController)
			})
		})
	})
}
