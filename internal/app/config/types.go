package config

type (
	InternalConfig struct {
		App            App
		JWT            JWT
		PaymentGateway PaymentGateway
		Reaper         Reaper
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int
		DefaultCurrency            string
		SlotIntervalInMinutes      int
		PaymentEventQueue          string
		InitiatePaymentMaxPerMin   int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret string
	}

	PaymentGateway struct {
		SecretKey        string
		WebhookSecret    string
		SuccessUrl       string
		CancelUrl        string
		TimeoutInSeconds int
	}

	Reaper struct {
		CronSpec             string
		GracePeriodInMinutes int
		BatchSize            int
	}
)
