package middlewares

import (
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(perMinute int) *keyedLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	limiter, ok := kl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(kl.limit, kl.burst)
		kl.limiters[key] = limiter
	}
	return limiter.Allow()
}

// InitiatePaymentRateLimit throttles payment session creation per caller.
// Authenticated callers are keyed by their bearer token so the limit follows
// the session rather than the network address.
func (m *Middlewares) InitiatePaymentRateLimit() func(http.Handler) http.Handler {
	limiter := newKeyedLimiter(m.InternalConfig.App.InitiatePaymentMaxPerMin)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(constvars.HeaderAuthorization)
			if key == "" {
				key = r.RemoteAddr
			}
			if !limiter.allow(key) {
				w.Header().Set(constvars.HeaderRetryAfter, "60")
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyPaymentAttempts(
					fmt.Errorf("more than %d initiate-payment calls in one minute", m.InternalConfig.App.InitiatePaymentMaxPerMin),
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
