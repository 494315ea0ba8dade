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

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = fmt.Errorf("not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*models.User, error)
	GetDuplicate(ctx context.Context, email, username string) (*models.User, error)
	Search(ctx context.Context, query string, excludeID string, limit int64) ([]models.User, error)
	FindNotIn(ctx context.Context, exclude []primitive.ObjectID, skip, limit int64) ([]models.User, error)
	CountNotIn(ctx context.Context, exclude []primitive.ObjectID) (int64, error)
	SetOnline(ctx context.Context, id string, online bool) error
	UpdatePhoto(ctx context.Context, id, url, publicID string, isCover bool) (*models.User, error)
	SetPasswordReset(ctx context.Context, id, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, email, token string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	PushRef(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error
	PullRef(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error
	PullRefFromAll(ctx context.Context, field string, ref primitive.ObjectID) error
	AddConversationPartner(ctx context.Context, userID, partnerID primitive.ObjectID) (bool, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// Create creates a new user in MongoDB
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetByID retrieves a user by ID
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDs retrieves users referenced by the given ids
func (r *MongoUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername retrieves a user by username
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmailOrUsername retrieves a user matching the value as either email
// or username
func (r *MongoUserRepository) GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": emailOrUsername},
		bson.M{"username": emailOrUsername},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetDuplicate returns an existing user holding either the email or the
// username, or nil when both are free
func (r *MongoUserRepository) GetDuplicate(ctx context.Context, email, username string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Search finds users whose username or full name matches the query,
// case-insensitive, excluding the searching user
func (r *MongoUserRepository) Search(ctx context.Context, query string, excludeID string, limit int64) ([]models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": primitive.Regex{Pattern: query, Options: "i"}},
		bson.M{"fullName": primitive.Regex{Pattern: query, Options: "i"}},
	}}
	if excludeID != "" {
		objID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		filter["_id"] = bson.M{"$ne": objID}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindNotIn retrieves users whose id is not in the exclude list, newest first
func (r *MongoUserRepository) FindNotIn(ctx context.Context, exclude []primitive.ObjectID, skip, limit int64) ([]models.User, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$nin": exclude}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountNotIn counts users whose id is not in the exclude list
func (r *MongoUserRepository) CountNotIn(ctx context.Context, exclude []primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"_id": bson.M{"$nin": exclude}})
}

// SetOnline updates the user's isOnline flag
func (r *MongoUserRepository) SetOnline(ctx context.Context, id string, online bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"isOnline": online}})
	return err
}

// UpdatePhoto sets the profile or cover photo and returns the updated user
func (r *MongoUserRepository) UpdatePhoto(ctx context.Context, id, url, publicID string, isCover bool) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	fields := bson.M{"image": url, "imagePublicId": publicID}
	if isCover {
		fields = bson.M{"coverImage": url, "coverImagePublicId": publicID}
	}
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetPasswordReset stores the password reset token and its expiry
func (r *MongoUserRepository) SetPasswordReset(ctx context.Context, id, token string, expiry time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	update := bson.M{"$set": bson.M{
		"passwordResetToken":       token,
		"passwordResetTokenExpiry": expiry,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

// GetByResetToken retrieves a user by email and a still-valid reset token
func (r *MongoUserRepository) GetByResetToken(ctx context.Context, email, token string) (*models.User, error) {
	filter := bson.M{
		"email":                    email,
		"passwordResetToken":       token,
		"passwordResetTokenExpiry": bson.M{"$gte": time.Now()},
	}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the password hash and clears any reset token
func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now()},
		"$unset": bson.M{"passwordResetToken": "", "passwordResetTokenExpiry": ""},
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

// PushRef appends an entity reference onto a user's reference array
func (r *MongoUserRepository) PushRef(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{field: ref}})
	return err
}

// PullRef removes an entity reference from a user's reference array
func (r *MongoUserRepository) PullRef(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{field: ref}})
	return err
}

// PullRefFromAll removes an entity reference from every user holding it.
// Used by cascade deletes; removing an absent reference is a no-op.
func (r *MongoUserRepository) PullRefFromAll(ctx context.Context, field string, ref primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{field: ref}, bson.M{"$pull": bson.M{field: ref}})
	return err
}

// AddConversationPartner adds partnerID onto the user's partner list. The
// filter excludes users already holding the partner, so concurrent calls add
// it at most once. Reports whether the list changed.
func (r *MongoUserRepository) AddConversationPartner(ctx context.Context, userID, partnerID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": userID, "messages": bson.M{"$ne": partnerID}}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"messages": partnerID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
