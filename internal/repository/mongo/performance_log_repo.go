package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/repository"
)

const performanceLogCollectionName = "performance_logs"

// mongoPerformanceLogRepository implements repository.PerformanceLogRepository.
type mongoPerformanceLogRepository struct {
	collection *mongo.Collection
}

// NewMongoPerformanceLogRepository creates a new performance-log reader.
func NewMongoPerformanceLogRepository(db *mongo.Database) repository.PerformanceLogRepository {
	return &mongoPerformanceLogRepository{
		collection: db.Collection(performanceLogCollectionName),
	}
}

// GetRecentByUser returns up to limit entries, most recent first.
func (r *mongoPerformanceLogRepository) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.PerformanceLog, error) {
	var logs []domain.PerformanceLog
	filter := bson.M{"userId": userID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsurePerformanceLogIndexes creates necessary indexes. Call during startup.
func EnsurePerformanceLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
