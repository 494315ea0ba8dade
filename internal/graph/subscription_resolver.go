package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/tuanvm/social-network/backend/internal/events"
)

// bridge adapts a typed broker subscription to the untyped channel the
// GraphQL executor consumes. The channel closes when the request context
// ends, which tears the broker subscription down with it.
func bridge[T any](ctx context.Context, b *events.Broker, topic events.Topic,
	pred func(T) bool, project func(T) interface{}) (interface{}, error) {

	src, err := events.Subscribe(ctx, b, topic, pred)
	if err != nil {
		return nil, err
	}

	out := make(chan interface{})
	go func() {
		defer close(out)
		for event := range src {
			select {
			case out <- project(event):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// subscribeMessageCreated streams messages exchanged between the two given
// users, in either direction. Only a participant may listen.
func (r *Resolver) subscribeMessageCreated(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	authUserID := stringArg(p, "authUserId")
	userID := stringArg(p, "userId")
	if claims.UserID != authUserID {
		return nil, ErrUnauthenticated
	}

	pred := func(ev events.MessageCreated) bool {
		sender := ev.Message.Sender.Hex()
		receiver := ev.Message.Receiver.Hex()
		return (sender == authUserID && receiver == userID) ||
			(sender == userID && receiver == authUserID)
	}
	return bridge(p.Context, r.Broker, events.TopicMessageCreated, pred,
		func(ev events.MessageCreated) interface{} { return ev.Message })
}

// subscribeNewConversation streams conversation openers addressed to the
// authenticated user.
func (r *Resolver) subscribeNewConversation(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	pred := func(ev events.NewConversation) bool {
		return ev.ReceiverID == claims.UserID
	}
	return bridge(p.Context, r.Broker, events.TopicNewConversation, pred,
		func(ev events.NewConversation) interface{} { return ev.Conversation })
}

// subscribeNotificationCreated streams notifications addressed to the
// authenticated user.
func (r *Resolver) subscribeNotificationCreated(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	pred := func(ev events.NotificationCreated) bool {
		return ev.Notification.User.Hex() == claims.UserID
	}
	return bridge(p.Context, r.Broker, events.TopicNotificationCreated, pred,
		func(ev events.NotificationCreated) interface{} { return ev.Notification })
}

// subscribeIsUserOnline streams presence changes of the given user.
func (r *Resolver) subscribeIsUserOnline(p graphql.ResolveParams) (interface{}, error) {
	if _, err := authClaims(p.Context); err != nil {
		return nil, err
	}

	userID := stringArg(p, "userId")
	pred := func(ev events.UserOnline) bool {
		return ev.UserID == userID
	}
	return bridge(p.Context, r.Broker, events.TopicIsUserOnline, pred,
		func(ev events.UserOnline) interface{} { return ev })
}
