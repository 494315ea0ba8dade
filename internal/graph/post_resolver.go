package graph

import (
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/repositories"
)

// getPosts lists explore posts: posts with an image, excluding the
// authenticated user's own.
func (r *Resolver) getPosts(p graphql.ResolveParams) (interface{}, error) {
	exclude := primitive.NilObjectID
	if claims := authClaimsOrNil(p.Context); claims != nil {
		oid, err := primitiveID(claims.UserID)
		if err != nil {
			return nil, err
		}
		exclude = oid
	}

	posts, count, err := r.Posts.GetExplore(p.Context, exclude, int64Arg(p, "skip"), int64Arg(p, "limit"))
	if err != nil {
		return nil, err
	}
	return postsPage{Posts: posts, Count: count}, nil
}

// getFollowedPosts lists posts from the authenticated user and everyone
// they follow, newest first.
func (r *Resolver) getFollowedPosts(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	followees, err := r.Follows.FolloweeIDs(p.Context, authID)
	if err != nil {
		return nil, err
	}
	authors := append(followees, authID)

	posts, count, err := r.Posts.GetByAuthors(p.Context, authors, int64Arg(p, "skip"), int64Arg(p, "limit"))
	if err != nil {
		return nil, err
	}
	return postsPage{Posts: posts, Count: count}, nil
}

func (r *Resolver) getPost(p graphql.ResolveParams) (interface{}, error) {
	post, err := r.Posts.GetByID(p.Context, stringArg(p, "id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errPostNotFound)
		}
		return nil, err
	}
	return post, nil
}

func (r *Resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	title := inputString(in, "title")
	upload := inputUpload(in, "image")
	if title == "" && upload == nil {
		return nil, inputError(errPostEmpty)
	}

	post := &models.Post{Title: title, Author: authID}

	// The object is uploaded before the record is written. If the write
	// fails the object is reclaimed, so no record ever points at missing
	// media.
	if upload != nil {
		file, err := upload.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		ref, err := r.Media.Store(p.Context, file, mediaBucket, upload.ContentType())
		if err != nil {
			return nil, err
		}
		post.Image = ref.URL
		post.ImagePublicID = ref.PublicID()
	}

	if err := r.Posts.Create(p.Context, post); err != nil {
		if post.ImagePublicID != "" {
			r.removeMedia(p.Context, post.ImagePublicID)
		}
		return nil, err
	}
	if err := r.Users.PushRef(p.Context, authID, "posts", post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// deletePost removes a post and everything hanging off it: the stored
// image, its likes, comments and notifications, and every reference other
// documents hold to those. Each step tolerates already-removed data, so a
// partially failed delete can be retried to completion.
func (r *Resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	id := inputString(in, "id")
	postID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, inputError(errPostNotFound)
	}

	imagePublicID := inputString(in, "imagePublicId")

	if existing, err := r.Posts.GetByID(p.Context, id); err == nil {
		if existing.Author.Hex() != claims.UserID {
			return nil, ErrUnauthenticated
		}
	} else if err != repositories.ErrNotFound {
		return nil, err
	}

	post, err := r.Posts.Delete(p.Context, id)
	if err != nil && err != repositories.ErrNotFound {
		return nil, err
	}
	if post != nil && post.ImagePublicID != "" {
		imagePublicID = post.ImagePublicID
	}
	if imagePublicID != "" {
		r.removeMedia(p.Context, imagePublicID)
	}

	if post != nil {
		if err := r.Users.PullRef(p.Context, post.Author, "posts", postID); err != nil {
			return nil, err
		}
	} else {
		if err := r.Users.PullRefFromAll(p.Context, "posts", postID); err != nil {
			return nil, err
		}
	}

	likes, err := r.Likes.DeleteByPost(p.Context, postID)
	if err != nil {
		return nil, err
	}
	for _, like := range likes {
		if err := r.Users.PullRef(p.Context, like.User, "likes", like.ID); err != nil {
			return nil, err
		}
	}

	comments, err := r.Comments.DeleteByPost(p.Context, postID)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if err := r.Users.PullRef(p.Context, comment.Author, "comments", comment.ID); err != nil {
			return nil, err
		}
	}

	notifications, err := r.Notifications.DeleteByPost(p.Context, postID)
	if err != nil {
		return nil, err
	}
	for _, n := range notifications {
		if err := r.Users.PullRef(p.Context, n.User, "notifications", n.ID); err != nil {
			return nil, err
		}
	}

	if post == nil {
		r.Log.Info("post already deleted, cascade re-run", zap.String("postId", id))
		post = &models.Post{ID: postID}
	}
	return post, nil
}
