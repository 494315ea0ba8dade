package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. The Messages array is the
// conversation-partner adjacency list: a partner id is pushed onto both
// users the first time they exchange a message.
type User struct {
	ID                 primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FullName           string               `json:"fullName" bson:"fullName"`
	Email              string               `json:"email" bson:"email"`
	Username           string               `json:"username" bson:"username"`
	Password           string               `json:"-" bson:"password"`
	Image              string               `json:"image,omitempty" bson:"image,omitempty"`
	ImagePublicID      string               `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
	CoverImage         string               `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	CoverImagePublicID string               `json:"coverImagePublicId,omitempty" bson:"coverImagePublicId,omitempty"`
	IsOnline           bool                 `json:"isOnline" bson:"isOnline"`
	Posts              []primitive.ObjectID `json:"posts,omitempty" bson:"posts,omitempty"`
	Likes              []primitive.ObjectID `json:"likes,omitempty" bson:"likes,omitempty"`
	Comments           []primitive.ObjectID `json:"comments,omitempty" bson:"comments,omitempty"`
	Followers          []primitive.ObjectID `json:"followers,omitempty" bson:"followers,omitempty"`
	Following          []primitive.ObjectID `json:"following,omitempty" bson:"following,omitempty"`
	Notifications      []primitive.ObjectID `json:"notifications,omitempty" bson:"notifications,omitempty"`
	Messages           []primitive.ObjectID `json:"messages,omitempty" bson:"messages,omitempty"`

	PasswordResetToken       string    `json:"-" bson:"passwordResetToken,omitempty"`
	PasswordResetTokenExpiry time.Time `json:"-" bson:"passwordResetTokenExpiry,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasConversationWith reports whether partnerID is already on the user's
// conversation-partner list.
func (u *User) HasConversationWith(partnerID primitive.ObjectID) bool {
	for _, id := range u.Messages {
		if id == partnerID {
			return true
		}
	}
	return false
}

// SignUpInput is the signup mutation payload
type SignUpInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInInput is the signin mutation payload
type SignInInput struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
