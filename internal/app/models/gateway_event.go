package models

// PaymentGatewayEvent is the verified, normalized form of a gateway webhook
// event. It is what gets published to the payment event queue after the
// signature check passes.
type PaymentGatewayEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	SessionID     string `json:"session_id"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id,omitempty"`
	AppointmentID string `json:"appointment_id"`
	PaymentID     string `json:"payment_id"`
	// RawPayload is the gateway object exactly as it arrived, kept so the
	// settled payment records what the gateway actually sent.
	RawPayload []byte `json:"raw_payload,omitempty"`
}
