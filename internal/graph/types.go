package graph

import (
	"context"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuanvm/social-network/backend/internal/conversations"
	"github.com/tuanvm/social-network/backend/internal/models"
)

// typeRegistry holds the object types of the schema. Relationship fields
// resolve lazily against the repositories, so callers get exactly the
// population depth their query asks for.
type typeRegistry struct {
	user         *graphql.Object
	post         *graphql.Object
	comment      *graphql.Object
	like         *graphql.Object
	follow       *graphql.Object
	notification *graphql.Object
	message      *graphql.Object
	conversation *graphql.Object
	userOnline   *graphql.Object

	token          *graphql.Object
	successMessage *graphql.Object
	postsPayload   *graphql.Object
	usersPayload   *graphql.Object
}

// Payload shapes returned by queries and mutations.
type tokenPayload struct {
	Token string `json:"token"`
}

type successPayload struct {
	Message string `json:"message"`
}

type postsPage struct {
	Posts []models.Post `json:"posts"`
	Count int64         `json:"count"`
}

type usersPage struct {
	Users []models.User `json:"users"`
	Count int64         `json:"count"`
}

func (r *Resolver) buildTypes() {
	r.types.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.ID, Resolve: resolveUserID},
			"fullName":           &graphql.Field{Type: graphql.String},
			"email":              &graphql.Field{Type: graphql.String},
			"username":           &graphql.Field{Type: graphql.String},
			"image":              &graphql.Field{Type: graphql.String},
			"imagePublicId":      &graphql.Field{Type: graphql.String},
			"coverImage":         &graphql.Field{Type: graphql.String},
			"coverImagePublicId": &graphql.Field{Type: graphql.String},
			"isOnline":           &graphql.Field{Type: graphql.Boolean},
			"createdAt":          &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.ID, Resolve: resolvePostID},
			"title":         &graphql.Field{Type: graphql.String},
			"image":         &graphql.Field{Type: graphql.String},
			"imagePublicId": &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.comment = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c := commentSource(p.Source); c != nil {
						return c.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"comment":   &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.like = graphql.NewObject(graphql.ObjectConfig{
		Name: "Like",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if l := likeSource(p.Source); l != nil {
						return l.ID.Hex(), nil
					}
					return nil, nil
				},
			},
		},
	})

	r.types.follow = graphql.NewObject(graphql.ObjectConfig{
		Name: "Follow",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if f := followSource(p.Source); f != nil {
						return f.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.notification = graphql.NewObject(graphql.ObjectConfig{
		Name: "Notification",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n := notificationSource(p.Source); n != nil {
						return n.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"type":      &graphql.Field{Type: graphql.String},
			"seen":      &graphql.Field{Type: graphql.Boolean},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.message = graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m := messageSource(p.Source); m != nil {
						return m.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"message":        &graphql.Field{Type: graphql.String},
			"imageMessage":   &graphql.Field{Type: graphql.String},
			"seen":           &graphql.Field{Type: graphql.Boolean},
			"isFirstMessage": &graphql.Field{Type: graphql.Boolean},
			"createdAt":      &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.conversation = graphql.NewObject(graphql.ObjectConfig{
		Name: "Conversation",
		Fields: graphql.Fields{
			"id":                   &graphql.Field{Type: graphql.ID},
			"username":             &graphql.Field{Type: graphql.String},
			"fullName":             &graphql.Field{Type: graphql.String},
			"image":                &graphql.Field{Type: graphql.String},
			"isOnline":             &graphql.Field{Type: graphql.Boolean},
			"seen":                 &graphql.Field{Type: graphql.Boolean},
			"lastMessage":          &graphql.Field{Type: graphql.String},
			"lastImageMessage":     &graphql.Field{Type: graphql.String},
			"lastMessageSender":    &graphql.Field{Type: graphql.Boolean},
			"lastMessageCreatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.types.userOnline = graphql.NewObject(graphql.ObjectConfig{
		Name: "UserOnline",
		Fields: graphql.Fields{
			"userId":   &graphql.Field{Type: graphql.ID},
			"isOnline": &graphql.Field{Type: graphql.Boolean},
		},
	})

	r.types.token = graphql.NewObject(graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String},
		},
	})

	r.types.successMessage = graphql.NewObject(graphql.ObjectConfig{
		Name: "SuccessMessage",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	r.types.postsPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "PostsPayload",
		Fields: graphql.Fields{
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	r.types.usersPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "UsersPayload",
		Fields: graphql.Fields{
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	r.wireRelations()
}

// wireRelations adds the circular relationship fields after every object
// exists.
func (r *Resolver) wireRelations() {
	userList := graphql.NewList(r.types.user)
	postList := graphql.NewList(r.types.post)

	r.types.user.AddFieldConfig("posts", &graphql.Field{
		Type: postList,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Posts.GetByIDs(p.Context, u.Posts)
		},
	})
	r.types.user.AddFieldConfig("likes", &graphql.Field{
		Type: graphql.NewList(r.types.like),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Likes.GetByIDs(p.Context, u.Likes)
		},
	})
	r.types.user.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewList(r.types.comment),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Comments.GetByIDs(p.Context, u.Comments)
		},
	})
	r.types.user.AddFieldConfig("followers", &graphql.Field{
		Type: graphql.NewList(r.types.follow),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Follows.GetByIDs(p.Context, u.Followers)
		},
	})
	r.types.user.AddFieldConfig("following", &graphql.Field{
		Type: graphql.NewList(r.types.follow),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Follows.GetByIDs(p.Context, u.Following)
		},
	})
	r.types.user.AddFieldConfig("notifications", &graphql.Field{
		Type: graphql.NewList(r.types.notification),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Notifications.GetByIDs(p.Context, u.Notifications, false)
		},
	})
	r.types.user.AddFieldConfig("newNotifications", &graphql.Field{
		Type: graphql.NewList(r.types.notification),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.Notifications.GetByIDs(p.Context, u.Notifications, true)
		},
	})
	r.types.user.AddFieldConfig("newConversations", &graphql.Field{
		Type: graphql.NewList(r.types.conversation),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p.Source)
			if u == nil {
				return nil, nil
			}
			return r.newConversations(p.Context, u)
		},
	})

	r.types.post.AddFieldConfig("author", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post := postSource(p.Source)
			if post == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, post.Author.Hex())
		},
	})
	r.types.post.AddFieldConfig("likes", &graphql.Field{
		Type: graphql.NewList(r.types.like),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post := postSource(p.Source)
			if post == nil {
				return nil, nil
			}
			return r.Likes.GetByIDs(p.Context, post.Likes)
		},
	})
	r.types.post.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewList(r.types.comment),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post := postSource(p.Source)
			if post == nil {
				return nil, nil
			}
			return r.Comments.GetByIDs(p.Context, post.Comments)
		},
	})

	r.types.comment.AddFieldConfig("post", &graphql.Field{
		Type: r.types.post,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c := commentSource(p.Source)
			if c == nil {
				return nil, nil
			}
			return r.Posts.GetByID(p.Context, c.Post.Hex())
		},
	})
	r.types.comment.AddFieldConfig("author", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c := commentSource(p.Source)
			if c == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, c.Author.Hex())
		},
	})

	r.types.like.AddFieldConfig("post", &graphql.Field{
		Type: r.types.post,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			l := likeSource(p.Source)
			if l == nil {
				return nil, nil
			}
			return r.Posts.GetByID(p.Context, l.Post.Hex())
		},
	})
	r.types.like.AddFieldConfig("user", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			l := likeSource(p.Source)
			if l == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, l.User.Hex())
		},
	})

	r.types.follow.AddFieldConfig("user", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			f := followSource(p.Source)
			if f == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, f.User.Hex())
		},
	})
	r.types.follow.AddFieldConfig("follower", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			f := followSource(p.Source)
			if f == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, f.Follower.Hex())
		},
	})

	r.types.notification.AddFieldConfig("author", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, n.Author.Hex())
		},
	})
	r.types.notification.AddFieldConfig("user", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, n.User.Hex())
		},
	})
	r.types.notification.AddFieldConfig("post", &graphql.Field{
		Type: r.types.post,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil || n.Post == nil {
				return nil, nil
			}
			return r.Posts.GetByID(p.Context, n.Post.Hex())
		},
	})
	r.types.notification.AddFieldConfig("like", &graphql.Field{
		Type: r.types.like,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil || n.Like == nil {
				return nil, nil
			}
			likes, err := r.Likes.GetByIDs(p.Context, []primitive.ObjectID{*n.Like})
			if err != nil || len(likes) == 0 {
				return nil, err
			}
			return likes[0], nil
		},
	})
	r.types.notification.AddFieldConfig("follow", &graphql.Field{
		Type: r.types.follow,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil || n.Follow == nil {
				return nil, nil
			}
			follows, err := r.Follows.GetByIDs(p.Context, []primitive.ObjectID{*n.Follow})
			if err != nil || len(follows) == 0 {
				return nil, err
			}
			return follows[0], nil
		},
	})
	r.types.notification.AddFieldConfig("comment", &graphql.Field{
		Type: r.types.comment,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			n := notificationSource(p.Source)
			if n == nil || n.Comment == nil {
				return nil, nil
			}
			comments, err := r.Comments.GetByIDs(p.Context, []primitive.ObjectID{*n.Comment})
			if err != nil || len(comments) == 0 {
				return nil, err
			}
			return comments[0], nil
		},
	})

	r.types.message.AddFieldConfig("sender", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := messageSource(p.Source)
			if m == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, m.Sender.Hex())
		},
	})
	r.types.message.AddFieldConfig("receiver", &graphql.Field{
		Type: r.types.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := messageSource(p.Source)
			if m == nil {
				return nil, nil
			}
			return r.Users.GetByID(p.Context, m.Receiver.Hex())
		},
	})

	r.types.postsPayload.AddFieldConfig("posts", &graphql.Field{Type: postList})
	r.types.usersPayload.AddFieldConfig("users", &graphql.Field{Type: userList})
}

// newConversations lists the latest unseen message per sending partner,
// newest first. Feeds the header badge on the client.
func (r *Resolver) newConversations(ctx context.Context, u *models.User) ([]conversations.Summary, error) {
	unseen, err := r.Messages.LatestUnseenBySender(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if len(unseen) == 0 {
		return nil, nil
	}

	senderIDs := make([]primitive.ObjectID, 0, len(unseen))
	for _, m := range unseen {
		senderIDs = append(senderIDs, m.Sender)
	}
	senders, err := r.Users.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(senders))
	for i := range senders {
		byID[senders[i].ID.Hex()] = &senders[i]
	}

	summaries := make([]conversations.Summary, 0, len(unseen))
	for i := range unseen {
		sender, ok := byID[unseen[i].Sender.Hex()]
		if !ok {
			continue
		}
		summaries = append(summaries, conversations.FromMessage(sender, &unseen[i], false))
	}
	return summaries, nil
}

func resolveUserID(p graphql.ResolveParams) (interface{}, error) {
	if u := userSource(p.Source); u != nil {
		return u.ID.Hex(), nil
	}
	return nil, nil
}

func resolvePostID(p graphql.ResolveParams) (interface{}, error) {
	if post := postSource(p.Source); post != nil {
		return post.ID.Hex(), nil
	}
	return nil, nil
}

// Source helpers: list elements arrive by value, single results by pointer.

func userSource(src interface{}) *models.User {
	switch v := src.(type) {
	case *models.User:
		return v
	case models.User:
		return &v
	}
	return nil
}

func postSource(src interface{}) *models.Post {
	switch v := src.(type) {
	case *models.Post:
		return v
	case models.Post:
		return &v
	}
	return nil
}

func commentSource(src interface{}) *models.Comment {
	switch v := src.(type) {
	case *models.Comment:
		return v
	case models.Comment:
		return &v
	}
	return nil
}

func likeSource(src interface{}) *models.Like {
	switch v := src.(type) {
	case *models.Like:
		return v
	case models.Like:
		return &v
	}
	return nil
}

func followSource(src interface{}) *models.Follow {
	switch v := src.(type) {
	case *models.Follow:
		return v
	case models.Follow:
		return &v
	}
	return nil
}

func notificationSource(src interface{}) *models.Notification {
	switch v := src.(type) {
	case *models.Notification:
		return v
	case models.Notification:
		return &v
	}
	return nil
}

func messageSource(src interface{}) *models.Message {
	switch v := src.(type) {
	case *models.Message:
		return v
	case models.Message:
		return &v
	}
	return nil
}
