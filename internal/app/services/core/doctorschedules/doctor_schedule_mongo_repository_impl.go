package doctorschedules

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

type DoctorScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorScheduleMongoRepository(db *mongo.Client, dbName string) contracts.DoctorScheduleRepository {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionDoctorSchedules)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "schedule_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(context.Background(), indexModel)

	return &DoctorScheduleMongoRepository{Collection: collection}
}

// Insert upserts the (doctor_id, schedule_id) pairing. An already published
// slot is left untouched and reported with an empty id, which makes repeated
// publications of the same list safe.
func (r *DoctorScheduleMongoRepository) Insert(ctx context.Context, doctorSchedule *models.DoctorSchedule) (string, error) {
	now := time.Now()

	filter := bson.M{
		"doctor_id":   doctorSchedule.DoctorID,
		"schedule_id": doctorSchedule.ScheduleID,
	}
	update := bson.M{"$setOnInsert": bson.M{
		"doctor_id":   doctorSchedule.DoctorID,
		"schedule_id": doctorSchedule.ScheduleID,
		"is_booked":   false,
		"created_at":  now,
		"updated_at":  now,
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", nil
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	if result.UpsertedID == nil {
		return "", nil
	}

	doctorSchedule.CreatedAt = now
	doctorSchedule.UpdatedAt = now
	return result.UpsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *DoctorScheduleMongoRepository) FindByID(ctx context.Context, doctorScheduleID string) (*models.DoctorSchedule, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorScheduleID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doctorSchedule models.DoctorSchedule
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctorSchedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	doctorSchedule.ID = doctorScheduleID
	return &doctorSchedule, nil
}

func (r *DoctorScheduleMongoRepository) FindByDoctor(ctx context.Context, doctorID string, page, pageSize int) ([]models.DoctorSchedule, int, error) {
	filter := bson.M{"doctor_id": doctorID}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var doctorSchedules []models.DoctorSchedule
	if err := cursor.All(ctx, &doctorSchedules); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctorSchedules, int(total), nil
}

// Reserve flips is_booked from false to true in one atomic write. The
// filter doubles as the availability precondition: losing the race means
// no matching document, not an error.
func (r *DoctorScheduleMongoRepository) Reserve(ctx context.Context, doctorID, scheduleID string) (bool, error) {
	filter := bson.M{
		"doctor_id":   doctorID,
		"schedule_id": scheduleID,
		"is_booked":   false,
	}
	update := bson.M{"$set": bson.M{"is_booked": true, "updated_at": time.Now()}}

	result := r.Collection.FindOneAndUpdate(ctx, filter, update)
	if err := result.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return true, nil
}

func (r *DoctorScheduleMongoRepository) Release(ctx context.Context, doctorID, scheduleID string) error {
	filter := bson.M{
		"doctor_id":   doctorID,
		"schedule_id": scheduleID,
		"is_booked":   true,
	}
	update := bson.M{"$set": bson.M{"is_booked": false, "updated_at": time.Now()}}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *DoctorScheduleMongoRepository) DeleteIfNotBooked(ctx context.Context, doctorScheduleID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorScheduleID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": objectID, "is_booked": false})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}
