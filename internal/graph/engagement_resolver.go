package graph

import (
	"context"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/repositories"
)

// notify records a notification for its recipient and announces it. Called
// only when the acting user differs from the recipient.
func (r *Resolver) notify(ctx context.Context, n *models.Notification) error {
	if err := r.Notifications.Create(ctx, n); err != nil {
		return err
	}
	if err := r.Users.PushRef(ctx, n.User, "notifications", n.ID); err != nil {
		return err
	}
	r.Broker.Publish(events.TopicNotificationCreated, events.NotificationCreated{Notification: *n})
	return nil
}

// dropNotification removes the notification referencing the given entity
// and the recipient's reference to it. Absence is not an error.
func (r *Resolver) dropNotification(ctx context.Context, field string, ref primitive.ObjectID) error {
	n, err := r.Notifications.DeleteByRef(ctx, field, ref)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil
		}
		return err
	}
	return r.Users.PullRef(ctx, n.User, "notifications", n.ID)
}

func (r *Resolver) createComment(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	text := inputString(in, "comment")
	if text == "" {
		return nil, inputError(errCommentRequired)
	}

	post, err := r.Posts.GetByID(p.Context, inputString(in, "postId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errPostNotFound)
		}
		return nil, err
	}

	comment := &models.Comment{Comment: text, Post: post.ID, Author: authID}
	if err := r.Comments.Create(p.Context, comment); err != nil {
		return nil, err
	}
	if err := r.Posts.PushRef(p.Context, post.ID, "comments", comment.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PushRef(p.Context, authID, "comments", comment.ID); err != nil {
		return nil, err
	}

	if post.Author != authID {
		n := &models.Notification{
			Type:    models.NotificationTypeComment,
			Author:  authID,
			User:    post.Author,
			Post:    &post.ID,
			Comment: &comment.ID,
		}
		if err := r.notify(p.Context, n); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (r *Resolver) deleteComment(p graphql.ResolveParams) (interface{}, error) {
	if _, err := authClaims(p.Context); err != nil {
		return nil, err
	}

	in := inputArg(p)
	comment, err := r.Comments.Delete(p.Context, inputString(in, "id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.Posts.PullRef(p.Context, comment.Post, "comments", comment.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PullRef(p.Context, comment.Author, "comments", comment.ID); err != nil {
		return nil, err
	}
	if err := r.dropNotification(p.Context, "comment", comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *Resolver) createLike(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	post, err := r.Posts.GetByID(p.Context, inputString(in, "postId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errPostNotFound)
		}
		return nil, err
	}

	like := &models.Like{Post: post.ID, User: authID}
	if err := r.Likes.Create(p.Context, like); err != nil {
		return nil, err
	}
	if err := r.Posts.PushRef(p.Context, post.ID, "likes", like.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PushRef(p.Context, authID, "likes", like.ID); err != nil {
		return nil, err
	}

	if post.Author != authID {
		n := &models.Notification{
			Type:   models.NotificationTypeLike,
			Author: authID,
			User:   post.Author,
			Post:   &post.ID,
			Like:   &like.ID,
		}
		if err := r.notify(p.Context, n); err != nil {
			return nil, err
		}
	}
	return like, nil
}

func (r *Resolver) deleteLike(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	postID, err := primitive.ObjectIDFromHex(inputString(in, "postId"))
	if err != nil {
		return nil, inputError(errPostNotFound)
	}

	like, err := r.Likes.Delete(p.Context, postID, authID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.Posts.PullRef(p.Context, like.Post, "likes", like.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PullRef(p.Context, like.User, "likes", like.ID); err != nil {
		return nil, err
	}
	if err := r.dropNotification(p.Context, "like", like.ID); err != nil {
		return nil, err
	}
	return like, nil
}

func (r *Resolver) createFollow(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	followerID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}
	userID, err := primitiveID(inputString(inputArg(p), "userId"))
	if err != nil {
		return nil, err
	}

	follow := &models.Follow{User: userID, Follower: followerID}
	if err := r.Follows.Create(p.Context, follow); err != nil {
		return nil, err
	}
	if err := r.Users.PushRef(p.Context, userID, "followers", follow.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PushRef(p.Context, followerID, "following", follow.ID); err != nil {
		return nil, err
	}

	n := &models.Notification{
		Type:   models.NotificationTypeFollow,
		Author: followerID,
		User:   userID,
		Follow: &follow.ID,
	}
	if err := r.notify(p.Context, n); err != nil {
		return nil, err
	}
	return follow, nil
}

func (r *Resolver) deleteFollow(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	followerID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}
	userID, err := primitiveID(inputString(inputArg(p), "userId"))
	if err != nil {
		return nil, err
	}

	follow, err := r.Follows.Delete(p.Context, userID, followerID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.Users.PullRef(p.Context, userID, "followers", follow.ID); err != nil {
		return nil, err
	}
	if err := r.Users.PullRef(p.Context, followerID, "following", follow.ID); err != nil {
		return nil, err
	}
	if err := r.dropNotification(p.Context, "follow", follow.ID); err != nil {
		return nil, err
	}
	return follow, nil
}

// updateNotificationSeen marks every notification of the authenticated
// user as seen.
func (r *Resolver) updateNotificationSeen(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if err := r.Notifications.MarkAllSeen(p.Context, authID); err != nil {
		return nil, err
	}
	return true, nil
}
