package schedules

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

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleRepository {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionSchedules)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(context.Background(), indexModel)

	return &ScheduleMongoRepository{Collection: collection}
}

// InsertMany upserts each slot keyed by its (start_time, end_time) pair and
// returns only the slots created by this call. Slots that already exist are
// left untouched, so repeated bulk creations do not duplicate inventory.
func (r *ScheduleMongoRepository) InsertMany(ctx context.Context, schedules []models.Schedule) ([]models.Schedule, error) {
	now := time.Now()
	created := make([]models.Schedule, 0, len(schedules))
	for i := range schedules {
		filter := bson.M{
			"start_time": schedules[i].StartTime,
			"end_time":   schedules[i].EndTime,
		}
		update := bson.M{"$setOnInsert": bson.M{
			"start_time": schedules[i].StartTime,
			"end_time":   schedules[i].EndTime,
			"created_at": now,
			"updated_at": now,
		}}

		result, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return nil, exceptions.ErrMongoDBInsertDocument(err)
		}
		if result.UpsertedID == nil {
			continue
		}

		schedules[i].ID = result.UpsertedID.(primitive.ObjectID).Hex()
		schedules[i].CreatedAt = now
		schedules[i].UpdatedAt = now
		created = append(created, schedules[i])
	}
	return created, nil
}

func (r *ScheduleMongoRepository) FindByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var schedule models.Schedule
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	schedule.ID = scheduleID
	return &schedule, nil
}

func (r *ScheduleMongoRepository) FindByIDs(ctx context.Context, scheduleIDs []string) ([]models.Schedule, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(scheduleIDs))
	for _, scheduleID := range scheduleIDs {
		objectID, err := primitive.ObjectIDFromHex(scheduleID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		objectIDs = append(objectIDs, objectID)
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return schedules, nil
}

func (r *ScheduleMongoRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Schedule, int, error) {
	total, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return schedules, int(total), nil
}
