package appointments

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	appointment.ID = appointmentID
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindAll(ctx context.Context, filter *contracts.AppointmentFilter) ([]models.Appointment, int, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if filter.Date != nil {
		dayStart := filter.Date.Truncate(24 * time.Hour)
		query["appointment_date"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.Add(24 * time.Hour),
		}
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize)).
		SetSort(bson.D{{Key: "appointment_date", Value: 1}})

	cursor, err := r.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, int(total), nil
}

// UpdateStatus filters on the expected source status, so a transition that
// happened between validation and this write matches nothing.
func (r *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *AppointmentMongoRepository) UpdatePaymentStatus(ctx context.Context, appointmentID string, status models.PaymentStatus) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{"payment_status": status, "updated_at": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindUnpaidOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	query := bson.M{
		"payment_status": models.PaymentUnpaid,
		"created_at":     bson.M{"$lt": cutoff},
	}

	findOptions := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

// DeleteIfUnpaid removes the appointment only while it is still UNPAID, so
// a payment that lands between candidate selection and deletion wins.
func (r *AppointmentMongoRepository) DeleteIfUnpaid(ctx context.Context, appointmentID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	result, err := r.Collection.DeleteOne(ctx, bson.M{
		"_id":            objectID,
		"payment_status": models.PaymentUnpaid,
	})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}
