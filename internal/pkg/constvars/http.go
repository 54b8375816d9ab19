package constvars

const (
	MIMETextPlain       = "text/plain"
	MIMEApplicationJSON = "application/json"
)

const (
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderRetryAfter      = "Retry-After"
	HeaderStripeSignature = "Stripe-Signature"
)

const (
	StatusOK                   = 200
	StatusCreated              = 201
	StatusBadRequest           = 400
	StatusUnauthorized         = 401
	StatusForbidden            = 403
	StatusNotFound             = 404
	StatusConflict             = 409
	StatusGone                 = 410
	StatusUnprocessableEntity  = 422
	StatusTooManyRequests      = 429
	StatusInternalServerError  = 500
	StatusBadGateway           = 502
	StatusServiceUnavailable   = 503
	StatusGatewayTimeout       = 504
	StatusMethodNotAllowed     = 405
	StatusUnsupportedMediaType = 415
)
