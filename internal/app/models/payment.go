package models

type Payment struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	AppointmentID     string        `json:"appointment_id" bson:"appointment_id"`
	Amount            int64         `json:"amount" bson:"amount"`
	Currency          string        `json:"currency" bson:"currency"`
	Status            PaymentStatus `json:"status" bson:"status"`
	CheckoutSessionID string        `json:"checkout_session_id,omitempty" bson:"checkout_session_id,omitempty"`
	TransactionID     string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	GatewayData       string        `json:"gateway_data,omitempty" bson:"gateway_data,omitempty"`
	TimeModel         `bson:",inline"`
}
