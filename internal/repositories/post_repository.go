package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanvm/social-network/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
	GetExplore(ctx context.Context, excludeAuthor primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error)
	GetByAuthors(ctx context.Context, authors []primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error)
	PushRef(ctx context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error
	PullRef(ctx context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// Create creates a new post in MongoDB
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetByID retrieves a post by ID
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDs retrieves posts referenced by the given ids, newest first
func (r *MongoPostRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post and returns the removed document. Deleting an
// already-deleted post returns ErrNotFound.
func (r *MongoPostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetExplore retrieves posts carrying an image, excluding the given author,
// newest first, with the total count
func (r *MongoPostRepository) GetExplore(ctx context.Context, excludeAuthor primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	filter := bson.M{"$and": bson.A{
		bson.M{"image": bson.M{"$ne": ""}},
		bson.M{"author": bson.M{"$ne": excludeAuthor}},
	}}
	return r.findPage(ctx, filter, skip, limit)
}

// GetByAuthors retrieves posts authored by any of the given users, newest
// first, with the total count
func (r *MongoPostRepository) GetByAuthors(ctx context.Context, authors []primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	return r.findPage(ctx, bson.M{"author": bson.M{"$in": authors}}, skip, limit)
}

func (r *MongoPostRepository) findPage(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// PushRef appends a like or comment reference onto the post
func (r *MongoPostRepository) PushRef(ctx context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{field: ref}})
	return err
}

// PullRef removes a like or comment reference from the post
func (r *MongoPostRepository) PullRef(ctx context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{field: ref}})
	return err
}
