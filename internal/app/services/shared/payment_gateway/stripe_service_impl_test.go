package payment_gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string, timestamp time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", timestamp.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", timestamp.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func newTestStripeService() *stripeService {
	return &stripeService{
		WebhookSecret:    testWebhookSecret,
		TimeoutInSeconds: 10,
		Log:              zap.NewNop(),
	}
}

func completedEventPayload() []byte {
	return []byte(`{
		"id": "evt_test_001",
		"api_version": "2023-10-16",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_abc",
				"object": "checkout.session",
				"payment_status": "paid",
				"payment_intent": {"id": "pi_test_123"},
				"metadata": {
					"appointment_id": "66cfa0b2f1d2a3b4c5d6e7f8",
					"payment_id": "66cfa0b2f1d2a3b4c5d6e7f9"
				}
			}
		}
	}`)
}

func TestVerifyWebhookEventValidSignature(t *testing.T) {
	svc := newTestStripeService()
	payload := completedEventPayload()
	header := signPayload(t, payload, testWebhookSecret, time.Now())

	event, err := svc.VerifyWebhookEvent(payload, header)
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, "evt_test_001", event.EventID)
	assert.Equal(t, constvars.StripeEventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_test_abc", event.SessionID)
	assert.Equal(t, constvars.StripePaymentStatusPaid, event.PaymentStatus)
	assert.Equal(t, "pi_test_123", event.TransactionID)
	assert.Equal(t, "66cfa0b2f1d2a3b4c5d6e7f8", event.AppointmentID)
	assert.Equal(t, "66cfa0b2f1d2a3b4c5d6e7f9", event.PaymentID)
	assert.Contains(t, string(event.RawPayload), `"cs_test_abc"`)
}

func TestVerifyWebhookEventInvalidSignature(t *testing.T) {
	svc := newTestStripeService()
	payload := completedEventPayload()
	header := signPayload(t, payload, "whsec_wrong_secret", time.Now())

	event, err := svc.VerifyWebhookEvent(payload, header)
	assert.Error(t, err)
	assert.Nil(t, event)
}

func TestVerifyWebhookEventTamperedPayload(t *testing.T) {
	svc := newTestStripeService()
	payload := completedEventPayload()
	header := signPayload(t, payload, testWebhookSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = ' '

	event, err := svc.VerifyWebhookEvent(tampered, header)
	assert.Error(t, err)
	assert.Nil(t, event)
}

func TestVerifyWebhookEventStaleTimestamp(t *testing.T) {
	svc := newTestStripeService()
	payload := completedEventPayload()
	header := signPayload(t, payload, testWebhookSecret, time.Now().Add(-time.Hour))

	event, err := svc.VerifyWebhookEvent(payload, header)
	assert.Error(t, err)
	assert.Nil(t, event)
}

func TestVerifyWebhookEventIgnoresUnrelatedTypes(t *testing.T) {
	svc := newTestStripeService()
	payload := []byte(`{
		"id": "evt_test_002",
		"api_version": "2023-10-16",
		"type": "invoice.paid",
		"data": {"object": {"id": "in_test_001"}}
	}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now())

	event, err := svc.VerifyWebhookEvent(payload, header)
	assert.NoError(t, err)
	assert.Nil(t, event)
}
