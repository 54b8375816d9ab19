package middlewares

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessionService struct {
	sessionData string
	err         error
}

func (s *stubSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	return nil, nil
}

func (s *stubSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return s.sessionData, s.err
}

func newTestMiddlewares(sessionData string) *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		SessionService: &stubSessionService{
			sessionData: sessionData,
		},
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: "test-secret"},
			App: config.App{InitiatePaymentMaxPerMin: 2},
		},
	}
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	m := newTestMiddlewares(`{"session_id":"session-1","role":"PATIENT"}`)

	token, err := utils.GenerateSessionJWT("session-1", "test-secret", 1)
	require.NoError(t, err)

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
		assert.True(t, ok)
		assert.Contains(t, sessionData, "session-1")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := newTestMiddlewares("")

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	m := newTestMiddlewares("")

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestIDMiddlewareGeneratesAndEchoes(t *testing.T) {
	m := newTestMiddlewares("")

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		assert.True(t, ok)
		assert.NotEmpty(t, requestID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/schedules", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestRequestIDMiddlewareKeepsClientID(t *testing.T) {
	m := newTestMiddlewares("")

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		assert.Equal(t, "client-supplied-id", requestID)

		isClient, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
		assert.True(t, isClient)
	}))

	req := httptest.NewRequest("GET", "/api/v1/schedules", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-supplied-id", rr.Header().Get(constvars.HeaderXRequestID))
}

func TestInitiatePaymentRateLimitThrottlesPerToken(t *testing.T) {
	m := newTestMiddlewares("")

	handler := m.InitiatePaymentRateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(token string) int {
		req := httptest.NewRequest("POST", "/api/v1/appointments/apt-1/initiate-payment", nil)
		req.Header.Set(constvars.HeaderAuthorization, token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, request("Bearer token-a"))
	assert.Equal(t, http.StatusOK, request("Bearer token-a"))
	assert.Equal(t, http.StatusTooManyRequests, request("Bearer token-a"))

	// A different caller still has a full budget.
	assert.Equal(t, http.StatusOK, request("Bearer token-b"))
}
