package main

import (
	"context"
	"log"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/delivery/http/routers"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/drivers/messaging"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/doctorschedules"
	"medibook-service/internal/app/services/core/patients"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/core/schedules"
	"medibook-service/internal/app/services/shared/locker"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/queue"
	"medibook-service/internal/app/services/shared/redis"
	"medibook-service/internal/app/services/shared/session"
	"medibook-service/internal/app/services/shared/transaction"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error shutting down application dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	sessionService := session.NewSessionService(redisRepository)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	transactionExecutor := transaction.NewMongoTransactionExecutor(bootstrap.MongoDB)
	stripeService := payment_gateway.NewStripeService(bootstrap.InternalConfig, bootstrap.Logger)
	eventQueue := queue.NewRabbitMQQueue(bootstrap.RabbitMQ, bootstrap.Logger)

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	scheduleRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoDB, dbName)
	doctorScheduleRepository := doctorschedules.NewDoctorScheduleMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	paymentRepository := payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)

	// Usecases
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleRepository, sessionService, bootstrap.InternalConfig, bootstrap.Logger)
	doctorScheduleUsecase := doctorschedules.NewDoctorScheduleUsecase(doctorScheduleRepository, scheduleRepository, sessionService, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		transactionExecutor,
		appointmentRepository,
		paymentRepository,
		doctorScheduleRepository,
		scheduleRepository,
		patientRepository,
		doctorRepository,
		sessionService,
		stripeService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		transactionExecutor,
		paymentRepository,
		appointmentRepository,
		stripeService,
		eventQueue,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Background workers
	paymentWorker := payments.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, eventQueue, paymentUsecase)
	paymentWorker.Start(context.Background())
	bootstrap.PaymentWorkerStop = paymentWorker.Stop

	reaper := appointments.NewReaper(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockerService,
		transactionExecutor,
		appointmentRepository,
		paymentRepository,
		doctorScheduleRepository,
	)
	reaper.Start(context.Background())
	bootstrap.ReaperStop = reaper.Stop

	// Controllers
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)
	doctorScheduleController := controllers.NewDoctorScheduleController(bootstrap.Logger, doctorScheduleUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)

	// Middlewares
	httpMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		SessionService: sessionService,
		InternalConfig: bootstrap.InternalConfig,
	}

	bootstrap.Router.Use(httpMiddlewares.RequestIDMiddleware)
	bootstrap.Router.Use(httpMiddlewares.Logging(bootstrap.Logger))

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		httpMiddlewares,
		appointmentController,
		scheduleController,
		doctorScheduleController,
		paymentController,
	)
}
