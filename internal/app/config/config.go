package config

import (
	"medibook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medibook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Dhaka"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			DefaultCurrency:            utils.GetEnvString("APP_DEFAULT_CURRENCY", "usd"),
			SlotIntervalInMinutes:      utils.GetEnvInt("APP_SLOT_INTERVAL_IN_MINUTES", 30),
			PaymentEventQueue:          utils.GetEnvString("APP_RABBITMQ_PAYMENT_EVENT_QUEUE", "payment-events"),
			InitiatePaymentMaxPerMin:   utils.GetEnvInt("APP_INITIATE_PAYMENT_MAX_PER_MINUTE", 5),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		PaymentGateway: PaymentGateway{
			SecretKey:        utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			WebhookSecret:    utils.GetEnvString("STRIPE_WEBHOOK_SECRET", ""),
			SuccessUrl:       utils.GetEnvString("STRIPE_SUCCESS_URL", "http://localhost:3000/payment/success"),
			CancelUrl:        utils.GetEnvString("STRIPE_CANCEL_URL", "http://localhost:3000/payment/cancel"),
			TimeoutInSeconds: utils.GetEnvInt("STRIPE_TIMEOUT_IN_SECONDS", 10),
		},
		Reaper: Reaper{
			CronSpec:             utils.GetEnvString("REAPER_CRON_SPEC", "@every 1m"),
			GracePeriodInMinutes: utils.GetEnvInt("REAPER_GRACE_PERIOD_IN_MINUTES", 30),
			BatchSize:            utils.GetEnvInt("REAPER_BATCH_SIZE", 100),
		},
	}
}
