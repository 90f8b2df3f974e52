package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/repository"
)

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user-profile repository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByID retrieves the profile slice the engine reads. Missing or
// zero-valued training configuration is left for the service layer to
// default; this layer only reports what is stored.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
