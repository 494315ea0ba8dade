package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeFollow  = "follow"
	NotificationTypeComment = "comment"
)

// Notification represents a user notification stored in MongoDB. Author is
// the acting user, User the recipient. Exactly one of the entity references
// is set depending on Type.
type Notification struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Type      string              `json:"type" bson:"type"`
	Author    primitive.ObjectID  `json:"author" bson:"author"`
	User      primitive.ObjectID  `json:"user" bson:"user"`
	Post      *primitive.ObjectID `json:"post,omitempty" bson:"post,omitempty"`
	Like      *primitive.ObjectID `json:"like,omitempty" bson:"like,omitempty"`
	Follow    *primitive.ObjectID `json:"follow,omitempty" bson:"follow,omitempty"`
	Comment   *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty"`
	Seen      bool                `json:"seen" bson:"seen"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}
