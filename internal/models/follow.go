package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow represents a directed follow edge stored in MongoDB: Follower
// follows User.
type Follow struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Follower  primitive.ObjectID `json:"follower" bson:"follower"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
