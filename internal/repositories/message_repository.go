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

// MessageRepository defines the interface for message data operations. The
// latest-per-partner queries feed the conversation aggregator: one keyed by
// the partner as sender (inbound), one keyed by the partner as receiver
// (outbound), each keeping only the most recent message per partner.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, userA, userB primitive.ObjectID) ([]models.Message, error)
	MarkSeen(ctx context.Context, sender, receiver primitive.ObjectID) (int64, error)
	LatestInbound(ctx context.Context, user primitive.ObjectID) (map[string]models.Message, error)
	LatestOutbound(ctx context.Context, user primitive.ObjectID) (map[string]models.Message, error)
	LatestUnseenBySender(ctx context.Context, receiver primitive.ObjectID) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Create creates a new message in MongoDB
func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetConversation retrieves every message between the two users, oldest
// first. The (sender, receiver) pair is symmetric: both directions match.
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userA, userB primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$and": bson.A{
		bson.M{"$or": bson.A{bson.M{"sender": userA}, bson.M{"receiver": userA}}},
		bson.M{"$or": bson.A{bson.M{"sender": userB}, bson.M{"receiver": userB}}},
	}}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkSeen marks every unseen message from sender to receiver as seen and
// returns how many were updated
func (r *MongoMessageRepository) MarkSeen(ctx context.Context, sender, receiver primitive.ObjectID) (int64, error) {
	filter := bson.M{"sender": sender, "receiver": receiver, "seen": false}
	res, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"seen": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LatestInbound returns the most recent message sent to the user, one per
// sending partner, keyed by the partner's hex id
func (r *MongoMessageRepository) LatestInbound(ctx context.Context, user primitive.ObjectID) (map[string]models.Message, error) {
	return r.latestPerPartner(ctx, bson.M{"receiver": user}, "$sender")
}

// LatestOutbound returns the most recent message sent by the user, one per
// receiving partner, keyed by the partner's hex id
func (r *MongoMessageRepository) LatestOutbound(ctx context.Context, user primitive.ObjectID) (map[string]models.Message, error) {
	return r.latestPerPartner(ctx, bson.M{"sender": user}, "$receiver")
}

func (r *MongoMessageRepository) latestPerPartner(ctx context.Context, match bson.M, groupKey string) (map[string]models.Message, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": groupKey, "doc": bson.M{"$first": "$$ROOT"}}}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$doc"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	latest := make(map[string]models.Message, len(messages))
	for _, m := range messages {
		switch groupKey {
		case "$sender":
			latest[m.Sender.Hex()] = m
		case "$receiver":
			latest[m.Receiver.Hex()] = m
		default:
			return nil, fmt.Errorf("unsupported group key %s", groupKey)
		}
	}
	return latest, nil
}

// LatestUnseenBySender returns the most recent unseen message per sending
// partner, newest first. Feeds the new-conversations list on getAuthUser.
func (r *MongoMessageRepository) LatestUnseenBySender(ctx context.Context, receiver primitive.ObjectID) ([]models.Message, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"receiver": receiver, "seen": false}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$sender", "doc": bson.M{"$first": "$$ROOT"}}}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$doc"}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
