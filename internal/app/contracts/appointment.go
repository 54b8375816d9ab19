package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.CreateAppointment, error)
	CreateAppointmentPayLater(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.CreateAppointment, error)
	InitiatePayment(ctx context.Context, sessionData, appointmentID string) (*responses.InitiatePayment, error)
	UpdateStatus(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.UpdateAppointmentStatus, error)
	FindAll(ctx context.Context, sessionData string, request *requests.FindAllAppointmentsRequest) ([]responses.Appointment, int, error)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context, filter *AppointmentFilter) ([]models.Appointment, int, error)
	// UpdateStatus moves the appointment from one status to another. The
	// write only applies while the stored status still equals from; it
	// reports whether a document was matched.
	UpdateStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, appointmentID string, status models.PaymentStatus) error
	FindUnpaidOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error)
	DeleteIfUnpaid(ctx context.Context, appointmentID string) (bool, error)
}

type AppointmentFilter struct {
	PatientID     string
	DoctorID      string
	Date          *time.Time
	Status        string
	PaymentStatus string
	Page          int
	PageSize      int
}
