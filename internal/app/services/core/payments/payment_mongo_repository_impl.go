package payments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

func (r *PaymentMongoRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var payment models.Payment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	payment.ID = paymentID
	return &payment, nil
}

func (r *PaymentMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Collection.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) UpdateCheckoutSession(ctx context.Context, paymentID, checkoutSessionID string) error {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{"checkout_session_id": checkoutSessionID, "updated_at": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// MarkPaidIfUnpaid is the idempotency gate for gateway events: the status
// filter means a replayed event matches nothing and reports false. The raw
// gateway payload is stored with the settled payment.
func (r *PaymentMongoRepository) MarkPaidIfUnpaid(ctx context.Context, paymentID, transactionID string, gatewayData []byte) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "status": models.PaymentUnpaid}
	update := bson.M{"$set": bson.M{
		"status":         models.PaymentPaid,
		"transaction_id": transactionID,
		"gateway_data":   string(gatewayData),
		"updated_at":     time.Now(),
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

// ClearCheckoutSessionIfUnpaid is conditioned on both the unpaid status and
// the session id, so an expiry event for a superseded session is a no-op.
func (r *PaymentMongoRepository) ClearCheckoutSessionIfUnpaid(ctx context.Context, paymentID, checkoutSessionID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":                 objectID,
		"status":              models.PaymentUnpaid,
		"checkout_session_id": checkoutSessionID,
	}
	update := bson.M{
		"$unset": bson.M{"checkout_session_id": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *PaymentMongoRepository) DeleteUnpaidByAppointmentID(ctx context.Context, appointmentID string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{
		"appointment_id": appointmentID,
		"status":         models.PaymentUnpaid,
	})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
