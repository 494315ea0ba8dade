package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message represents a direct message stored in MongoDB. Immutable after
// creation except for the Seen flag.
type Message struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Sender        primitive.ObjectID `json:"sender" bson:"sender"`
	Receiver      primitive.ObjectID `json:"receiver" bson:"receiver"`
	Message       string             `json:"message,omitempty" bson:"message,omitempty"`
	ImageMessage  string             `json:"imageMessage,omitempty" bson:"imageMessage,omitempty"`
	ImagePublicID string             `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
	Seen          bool               `json:"seen" bson:"seen"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`

	// IsFirstMessage is set on the returned message when this exchange
	// opened the conversation. Not persisted.
	IsFirstMessage bool `json:"isFirstMessage,omitempty" bson:"-"`
}
