package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.With(middlewares.Authenticate).Post("/", scheduleController.CreateSchedules)
	router.Get("/", scheduleController.FindAll)
}
