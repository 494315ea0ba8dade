// Package events is the in-process broadcast bus backing GraphQL
// subscriptions. Topics are typed, delivery is fire-and-forget and
// at-most-once: a subscriber that is gone or slow at publish time simply
// misses the event.
package events

import (
	"github.com/tuanvm/social-network/backend/internal/conversations"
	"github.com/tuanvm/social-network/backend/internal/models"
)

// Topic names an event stream.
type Topic string

const (
	TopicMessageCreated      Topic = "MESSAGE_CREATED"
	TopicNewConversation     Topic = "NEW_CONVERSATION"
	TopicNotificationCreated Topic = "NOTIFICATION_CREATED"
	TopicIsUserOnline        Topic = "IS_USER_ONLINE"
)

// MessageCreated is published on every new direct message.
type MessageCreated struct {
	Message models.Message `json:"message"`
}

// NewConversation is published when a first message opens a conversation;
// it is addressed to the receiving user.
type NewConversation struct {
	ReceiverID   string                `json:"receiverId"`
	Conversation conversations.Summary `json:"conversation"`
}

// NotificationCreated is published on every new like/comment/follow
// notification; the recipient is Notification.User.
type NotificationCreated struct {
	Notification models.Notification `json:"notification"`
}

// UserOnline is published when a user's presence changes.
type UserOnline struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
}
