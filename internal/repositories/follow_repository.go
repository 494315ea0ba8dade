package repositories

import (
	"context"
	"time"

	"github.com/tuanvm/social-network/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Follow, error)
	Delete(ctx context.Context, userID, followerID primitive.ObjectID) (*models.Follow, error)
	FolloweeIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// Create creates a new follow edge in MongoDB
func (r *MongoFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, follow)
	return err
}

// GetByIDs retrieves follow edges referenced by the given ids
func (r *MongoFollowRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Follow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err = cursor.All(ctx, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

// Delete removes the follow edge and returns the removed document
func (r *MongoFollowRepository) Delete(ctx context.Context, userID, followerID primitive.ObjectID) (*models.Follow, error) {
	var follow models.Follow
	err := r.collection.FindOneAndDelete(ctx, bson.M{"user": userID, "follower": followerID}).Decode(&follow)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &follow, nil
}

// FolloweeIDs returns the ids of every user the follower follows
func (r *MongoFollowRepository) FolloweeIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"follower": followerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err = cursor.All(ctx, &follows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.User)
	}
	return ids, nil
}
