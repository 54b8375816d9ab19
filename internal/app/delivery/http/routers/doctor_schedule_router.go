package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorScheduleController *controllers.DoctorScheduleController) {
	router.With(middlewares.Authenticate).Post("/", doctorScheduleController.PublishSchedules)
	router.Get("/doctor/{doctorID}", doctorScheduleController.FindByDoctor)
	router.With(middlewares.Authenticate).Delete("/{doctorScheduleID}", doctorScheduleController.DeleteSchedule)
}
