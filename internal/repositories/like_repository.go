package repositories

import (
	"context"
	"time"

	"github.com/tuanvm/social-network/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Like, error)
	Delete(ctx context.Context, postID, userID primitive.ObjectID) (*models.Like, error)
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Like, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// Create creates a new like in MongoDB
func (r *MongoLikeRepository) Create(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	return err
}

// GetByIDs retrieves likes referenced by the given ids
func (r *MongoLikeRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Like, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// Delete removes the user's like on the post and returns the removed
// document
func (r *MongoLikeRepository) Delete(ctx context.Context, postID, userID primitive.ObjectID) (*models.Like, error) {
	var like models.Like
	err := r.collection.FindOneAndDelete(ctx, bson.M{"post": postID, "user": userID}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

// DeleteByPost removes every like of the post and returns the removed
// documents. Safe to re-run: an empty result means nothing was left.
func (r *MongoLikeRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Like, error) {
	filter := bson.M{"post": postID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, nil
	}

	if _, err = r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return likes, nil
}
