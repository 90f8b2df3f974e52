package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/repository"
)

const workoutDayCollectionName = "workout_days"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new workout-day repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(workoutDayCollectionName),
	}
}

// Create inserts a single workout-day row.
func (r *mongoPlanRepository) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if day.UserID == primitive.NilObjectID || day.Day == "" || day.WorkoutType == "" {
		return primitive.NilObjectID, errors.New("workout day requires userId, day, and workoutType")
	}
	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now
	if day.Status == "" {
		day.Status = domain.StatusScheduled
	}

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout day ID")
	}
	return insertedID, nil
}

// CreateMany inserts a whole generated week in one call.
func (r *mongoPlanRepository) CreateMany(ctx context.Context, days []domain.WorkoutDay) error {
	if len(days) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(days))
	for i := range days {
		if days[i].UserID == primitive.NilObjectID || days[i].Day == "" || days[i].WorkoutType == "" {
			return errors.New("workout day requires userId, day, and workoutType")
		}
		days[i].ID = primitive.NewObjectID()
		days[i].CreatedAt = now
		days[i].UpdatedAt = now
		if days[i].Status == "" {
			days[i].Status = domain.StatusScheduled
		}
		docs = append(docs, days[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a single workout day by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByUser retrieves all rows for a user, most recently created first.
func (r *mongoPlanRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	var days []domain.WorkoutDay
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when the user has no plan yet.
	return days, nil
}

// GetByUserAndDay retrieves every row matching one resolved day.
func (r *mongoPlanRepository) GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutDay, error) {
	var days []domain.WorkoutDay
	filter := bson.M{"userId": userID, "day": day}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Update rewrites the mutable fields of one row.
func (r *mongoPlanRepository) Update(ctx context.Context, day *domain.WorkoutDay) error {
	if day.ID == primitive.NilObjectID {
		return errors.New("workout day ID is required for update")
	}

	// UserID and PlanID never change through this path; a day moving
	// between labels is still the same row.
	filter := bson.M{"_id": day.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"day":         day.Day,
			"workoutType": day.WorkoutType,
			"durationMin": day.DurationMin,
			"status":      day.Status,
			"skipReason":  day.SkipReason,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserAndDay removes all rows for one day and reports the count.
func (r *mongoPlanRepository) DeleteByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (int64, error) {
	if userID == primitive.NilObjectID || day == "" {
		return 0, errors.New("user ID and day are required for deletion")
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "day": day})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByUser removes a user's entire plan (explicit reset only).
func (r *mongoPlanRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if userID == primitive.NilObjectID {
		return 0, errors.New("user ID is required for deletion")
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutDayIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Lookups and deletes are always scoped by user and day.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index(),
		},
		{
			// Plan status queries sort by creation time per user.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
