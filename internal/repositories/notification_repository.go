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

// NotificationRepository defines the interface for notification data
// operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByIDs(ctx context.Context, ids []primitive.ObjectID, onlyUnseen bool) ([]models.Notification, error)
	Delete(ctx context.Context, id string) (*models.Notification, error)
	DeleteByRef(ctx context.Context, field string, ref primitive.ObjectID) (*models.Notification, error)
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Notification, error)
	MarkAllSeen(ctx context.Context, userID primitive.ObjectID) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// Create creates a new notification in MongoDB
func (r *MongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// GetByIDs retrieves notifications referenced by the given ids, newest
// first, optionally only the unseen ones
func (r *MongoNotificationRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID, onlyUnseen bool) ([]models.Notification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if onlyUnseen {
		filter["seen"] = false
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Delete removes a notification and returns the removed document
func (r *MongoNotificationRepository) Delete(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid notification ID format: %w", err)
	}

	var notification models.Notification
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// DeleteByRef removes the notification referencing the given entity (field
// is one of "like", "follow", "comment") and returns it. ErrNotFound when
// no notification references the entity.
func (r *MongoNotificationRepository) DeleteByRef(ctx context.Context, field string, ref primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.collection.FindOneAndDelete(ctx, bson.M{field: ref}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// DeleteByPost removes every notification referencing the post and returns
// the removed documents. Safe to re-run.
func (r *MongoNotificationRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{"post": postID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, nil
	}

	if _, err = r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllSeen marks every notification addressed to the user as seen
func (r *MongoNotificationRepository) MarkAllSeen(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"user": userID, "seen": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"seen": true}})
	return err
}
