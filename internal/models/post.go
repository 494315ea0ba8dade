package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string               `json:"title,omitempty" bson:"title,omitempty"`
	Image         string               `json:"image,omitempty" bson:"image,omitempty"`
	ImagePublicID string               `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
	Author        primitive.ObjectID   `json:"author" bson:"author"`
	Likes         []primitive.ObjectID `json:"likes,omitempty" bson:"likes,omitempty"`
	Comments      []primitive.ObjectID `json:"comments,omitempty" bson:"comments,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}
